package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/seonghohan1228/plot-satellite-v2/internal/quicklook"
	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

// band is one stacked spectrogram strip.
type band struct {
	label string
	ch    telemetry.Channel
}

// spectrogramChart stacks one strip per band, time on x and energy bin on y.
// Each strip is scaled to its own min/max, with the lowest level white.
func spectrogramChart(title, ylabel string, times []float64, bands []band, w, h int) (*chart.Chart, bool) {
	if len(times) == 0 {
		return nil, false
	}
	for _, b := range bands {
		if b.ch.Len() != len(times) {
			return nil, false
		}
	}
	xlo, xhi := span(times)
	n := float64(len(bands))

	var ticks []chart.Tick
	for i, b := range bands {
		// Strip 0 sits on top, as in the stacked figure.
		ticks = append(ticks, chart.Tick{Value: n - float64(i) - 0.5, Label: b.label})
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })

	c := &chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: padding(),
		XAxis:      chart.XAxis{Name: "UT", Range: fixedRange(xlo, xhi), ValueFormatter: clockFormatter},
		YAxis:      chart.YAxis{Name: ylabel, Range: fixedRange(0, n), Ticks: ticks},
		// go-chart needs one series to lay out the axes.
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: []float64{xlo, xhi},
			YValues: []float64{0, n},
			Style:   chart.Style{StrokeWidth: chart.Disabled},
		}},
	}
	c.Elements = []chart.Renderable{heatmap(times, bands, xlo, xhi)}
	return c, true
}

// heatmap paints every record/bin cell as a filled rectangle.
func heatmap(times []float64, bands []band, xlo, xhi float64) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, _ chart.Style) {
		stripH := float64(box.Height()) / float64(len(bands))
		px := func(t float64) int {
			return box.Left + int(math.Round((t-xlo)/(xhi-xlo)*float64(box.Width())))
		}
		step := medianStep(times)

		r.SetStrokeWidth(0)
		for s, b := range bands {
			lo, hi := span(b.ch.Values())
			bins := b.ch.Width()
			top := float64(box.Top) + float64(s)*stripH
			binH := stripH / float64(bins)

			for i, t := range times {
				row := b.ch.Row(i)
				next := t + step
				if i+1 < len(times) {
					next = times[i+1]
				}
				x0, x1 := px(t), px(next)
				if x1 <= x0 {
					x1 = x0 + 1
				}
				for k := 0; k < bins; k++ {
					// Low bins at the bottom of the strip.
					y1 := int(math.Round(top + stripH - float64(k)*binH))
					y0 := int(math.Round(top + stripH - float64(k+1)*binH))
					if y1 <= y0 {
						y1 = y0 + 1
					}
					r.SetFillColor(Jet(row[k], lo, hi))
					r.MoveTo(x0, y0)
					r.LineTo(x1, y0)
					r.LineTo(x1, y1)
					r.LineTo(x0, y1)
					r.Close()
					r.Fill()
				}
			}
		}
	}
}

func medianStep(ts []float64) float64 {
	if len(ts) < 2 {
		return 1
	}
	d := make([]float64, len(ts)-1)
	for i := range d {
		d[i] = ts[i+1] - ts[i]
	}
	sort.Float64s(d)
	if m := d[len(d)/2]; m > 0 {
		return m
	}
	return 1
}

func protonChart(res *quicklook.Result, w, h int) (*chart.Chart, bool) {
	var bands []band
	for i, ch := range res.HEPD.Bands.Protons {
		bands = append(bands, band{label: fmt.Sprintf("Telescope %d", i), ch: ch})
	}
	return spectrogramChart("HEPD Proton", "HEPD Proton Energy [MeV]", res.HEPD.Time, bands, w, h)
}

func electronChart(res *quicklook.Result, w, h int) (*chart.Chart, bool) {
	var bands []band
	for i, ch := range res.HEPD.Bands.Electrons {
		bands = append(bands, band{label: fmt.Sprintf("Telescope %d", i), ch: ch})
	}
	return spectrogramChart("HEPD Electron", "HEPD Electron Energy [MeV]", res.HEPD.Time, bands, w, h)
}

func detectorChart(res *quicklook.Result, s quicklook.Subunit, name string, w, h int) (*chart.Chart, bool) {
	if s.Empty() {
		return nil, false
	}
	var bands []band
	for i, ch := range s.Detectors {
		bands = append(bands, band{label: fmt.Sprintf("Detector %d", i), ch: ch})
	}
	return spectrogramChart(name, "Energy [keV]", s.Time, bands, w, h)
}
