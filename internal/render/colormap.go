package render

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorBlack  = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	colorWhite  = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	colorRed    = drawing.Color{R: 214, G: 39, B: 40, A: 255}
	colorBlue   = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	colorYellow = drawing.Color{R: 230, G: 190, B: 0, A: 255}
	colorGray   = drawing.Color{R: 150, G: 150, B: 150, A: 255}
	colorNight  = drawing.Color{R: 40, G: 40, B: 60, A: 70}
)

// jetLevels matches the 256-entry colormap the spectrograms were designed with.
const jetLevels = 256

// Jet maps v in [lo, hi] onto the jet colormap. The lowest level is white so
// empty bins blend into the background.
func Jet(v, lo, hi float64) drawing.Color {
	if hi <= lo || math.IsNaN(v) {
		return colorWhite
	}
	f := (v - lo) / (hi - lo)
	level := int(math.Floor(f * jetLevels))
	if level <= 0 {
		return colorWhite
	}
	if level >= jetLevels {
		level = jetLevels - 1
	}
	x := float64(level) / (jetLevels - 1)
	return drawing.Color{
		R: channel(1.5 - math.Abs(4*x-3)),
		G: channel(1.5 - math.Abs(4*x-2)),
		B: channel(1.5 - math.Abs(4*x-1)),
		A: 255,
	}
}

// JetIndex colors the i-th of n samples, for time-ordered scatter points.
func JetIndex(i, n int) drawing.Color {
	if n <= 1 {
		return Jet(1, 0, 1)
	}
	x := float64(i) / float64(n-1)
	return drawing.Color{
		R: channel(1.5 - math.Abs(4*x-3)),
		G: channel(1.5 - math.Abs(4*x-2)),
		B: channel(1.5 - math.Abs(4*x-1)),
		A: 255,
	}
}

func channel(f float64) uint8 {
	return uint8(math.Round(255 * math.Max(0, math.Min(1, f))))
}
