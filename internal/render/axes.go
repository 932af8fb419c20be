package render

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/seonghohan1228/plot-satellite-v2/internal/derive"
)

// span returns the min and max of every given series, widened so the range
// is never empty.
func span(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi-lo < 1e-9 {
		pad := math.Max(math.Abs(lo)*0.05, 0.5)
		return lo - pad, hi + pad
	}
	return lo, hi
}

func fixedRange(lo, hi float64) *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// clockFormatter prints UNIX-second axis values as UTC "15:04".
func clockFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return derive.UnixTime(f).Format("15:04")
	}
	return ""
}

func line(name string, xs, ys []float64, style chart.Style) chart.Series {
	return chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: style}
}

func solid(c drawing.Color) chart.Style {
	return chart.Style{StrokeColor: c, StrokeWidth: 1.5}
}

func dashed(c drawing.Color) chart.Style {
	return chart.Style{StrokeColor: c, StrokeWidth: 1.5, StrokeDashArray: []float64{6, 4}}
}

func padding() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}}
}
