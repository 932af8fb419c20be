package render

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/seonghohan1228/plot-satellite-v2/internal/derive"
	"github.com/seonghohan1228/plot-satellite-v2/internal/quicklook"
	"github.com/seonghohan1228/plot-satellite-v2/internal/solar"
)

// Magnetic field panel limits in nT.
const magLimit = 60000

// pc1Chart plots relative time against packet count for HEPD and both MEPD subunits.
func pc1Chart(res *quicklook.Result, w, h int) (*chart.Chart, bool) {
	type trace struct {
		name  string
		pc, t []float64
		style chart.Style
	}
	traces := []trace{
		{"HEPD", res.HEPD.PacketCount, res.HEPD.Time, solid(colorBlue)},
		{"MEPD-A", res.MEPD.A.PacketCount, res.MEPD.A.Time, solid(colorBlack)},
		{"MEPD-B", res.MEPD.B.PacketCount, res.MEPD.B.Time, solid(colorRed)},
	}

	var series []chart.Series
	var xs, ys [][]float64
	for _, tr := range traces {
		if len(tr.pc) == 0 {
			continue
		}
		rel := derive.RelativeTime(tr.t)
		series = append(series, line(tr.name, tr.pc, rel, tr.style))
		xs, ys = append(xs, tr.pc), append(ys, rel)
	}
	if len(series) == 0 {
		return nil, false
	}
	xlo, xhi := span(xs...)
	ylo, yhi := span(ys...)

	c := &chart.Chart{
		Title:      "Time vs PC1",
		Width:      w,
		Height:     h,
		Background: padding(),
		XAxis:      chart.XAxis{Name: "PC1", Range: fixedRange(xlo, xhi)},
		YAxis:      chart.YAxis{Name: "Time (sec)", Range: fixedRange(ylo, yhi)},
		Series:     series,
	}
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return c, true
}

// magneticChart plots the measured and IGRF field components of HEPD.
func magneticChart(res *quicklook.Result, w, h int) (*chart.Chart, bool) {
	mag := res.HEPD.MagneticField
	t := res.HEPD.Time
	if len(t) == 0 || mag.Width() <= derive.IGRFZ {
		return nil, false
	}
	series := []chart.Series{
		line("Bx", t, mag.Column(0), solid(colorBlack)),
		line("By", t, mag.Column(1), solid(colorBlue)),
		line("Bz", t, mag.Column(2), solid(colorRed)),
		line("IGRF Bx", t, mag.Column(derive.IGRFX), dashed(colorBlack)),
		line("IGRF By", t, mag.Column(derive.IGRFY), dashed(colorBlue)),
		line("IGRF Bz", t, mag.Column(derive.IGRFZ), dashed(colorRed)),
		line("IGRF|B|", t, res.HEPD.IGRFMagnitude, dashed(colorYellow)),
	}
	xlo, xhi := span(t)

	c := &chart.Chart{
		Title:      "Magnetic Field",
		Width:      w,
		Height:     h,
		Background: padding(),
		XAxis:      chart.XAxis{Name: "UT", Range: fixedRange(xlo, xhi), ValueFormatter: clockFormatter},
		YAxis:      chart.YAxis{Name: "Magnetic Field (nT)", Range: fixedRange(-magLimit, magLimit)},
		Series:     series,
	}
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return c, true
}

// magLatChart plots the spacecraft geomagnetic latitude along the orbit.
func magLatChart(res *quicklook.Result, w, h int) (*chart.Chart, bool) {
	t, mlat := res.MEPD.Time, res.MEPD.TrackMagLat
	if len(t) == 0 || len(mlat) != len(t) {
		return nil, false
	}
	xlo, xhi := span(t)
	c := &chart.Chart{
		Title:      "Geomagnetic Latitude",
		Width:      w,
		Height:     h,
		Background: padding(),
		XAxis:      chart.XAxis{Name: "UT", Range: fixedRange(xlo, xhi), ValueFormatter: clockFormatter},
		YAxis: chart.YAxis{
			Name:  "MLAT (deg)",
			Range: fixedRange(-90, 90),
			Ticks: latitudeTicks(func(lat float64) float64 { return lat }),
		},
		Series: []chart.Series{line("MLAT", t, mlat, solid(colorBlue))},
	}
	if spans := nightSpans(res); len(spans) > 0 {
		c.Elements = []chart.Renderable{timeShade(spans, xlo, xhi)}
	}
	return c, true
}

// nightSpans returns the [start, end] UNIX-second intervals during which the
// spacecraft is on the night side.
func nightSpans(res *quicklook.Result) [][2]float64 {
	t := res.MEPD.Time
	lats, lons := res.MEPD.Latitudes(), res.MEPD.Longitudes()
	var (
		spans [][2]float64
		open  = -1
	)
	for i := range t {
		night := solar.TerminatorAt(derive.UnixTime(t[i]), nil).IsNight(lats[i], lons[i])
		switch {
		case night && open < 0:
			open = i
		case !night && open >= 0:
			spans = append(spans, [2]float64{t[open], t[i-1]})
			open = -1
		}
	}
	if open >= 0 {
		spans = append(spans, [2]float64{t[open], t[len(t)-1]})
	}
	return spans
}

// timeShade fills each interval over the full plot height.
func timeShade(spans [][2]float64, xlo, xhi float64) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, _ chart.Style) {
		px := func(x float64) int {
			return box.Left + int(math.Round((x-xlo)/(xhi-xlo)*float64(box.Width())))
		}
		r.SetFillColor(colorNight)
		r.SetStrokeWidth(0)
		for _, s := range spans {
			x0, x1 := px(s[0]), px(s[1])
			if x1 <= x0 {
				x1 = x0 + 1
			}
			r.MoveTo(x0, box.Top)
			r.LineTo(x1, box.Top)
			r.LineTo(x1, box.Bottom)
			r.LineTo(x0, box.Bottom)
			r.Close()
			r.Fill()
		}
	}
}
