package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/seonghohan1228/plot-satellite-v2/internal/derive"
	"github.com/seonghohan1228/plot-satellite-v2/internal/geomag"
	"github.com/seonghohan1228/plot-satellite-v2/internal/quicklook"
)

// Mercator latitude limit in degrees.
const mercLimit = 85

const deg = math.Pi / 180

func mercY(lat float64) float64 {
	lat = math.Max(-mercLimit, math.Min(mercLimit, lat))
	return math.Log(math.Tan(math.Pi/4 + lat*deg/2))
}

func latitudeTicks(project func(float64) float64) []chart.Tick {
	var ticks []chart.Tick
	for lat := -60.0; lat <= 60; lat += 30 {
		ticks = append(ticks, chart.Tick{Value: project(lat), Label: geomag.Label(lat)})
	}
	return ticks
}

func longitudeTicks() []chart.Tick {
	var ticks []chart.Tick
	for lon := -180.0; lon <= 180; lon += 45 {
		label := "0"
		switch {
		case lon < 0:
			label = fmt.Sprintf("%gW", -lon)
		case lon > 0:
			label = fmt.Sprintf("%gE", lon)
		}
		ticks = append(ticks, chart.Tick{Value: lon, Label: label})
	}
	return ticks
}

// trackStyle colors the ground track by time, first record blue, last red.
func trackStyle(n int) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    2,
		DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
			return JetIndex(index, n)
		},
	}
}

// endpointLabels annotates the first and last track point with their UT.
func endpointLabels(res *quicklook.Result, xs, ys []float64) chart.Series {
	n := len(xs)
	t := res.MEPD.Time
	return chart.AnnotationSeries{
		Annotations: []chart.Value2{
			{XValue: xs[0], YValue: ys[0], Label: derive.UnixTime(t[0]).Format("15:04")},
			{XValue: xs[n-1], YValue: ys[n-1], Label: derive.UnixTime(t[len(t)-1]).Format("15:04")},
		},
	}
}

// mercatorChart draws the ground track, geomagnetic parallels and the
// terminator on a Mercator map.
func mercatorChart(res *quicklook.Result, w, h int) (*chart.Chart, bool) {
	lats, lons := res.MEPD.Latitudes(), res.MEPD.Longitudes()
	if len(lats) == 0 {
		return nil, false
	}
	ys := make([]float64, len(lats))
	for i, lat := range lats {
		ys[i] = mercY(lat)
	}

	var series []chart.Series
	labels := chart.AnnotationSeries{Style: chart.Style{FontColor: colorBlue}}
	for i, target := range res.Parallels.Targets {
		py := make([]float64, len(res.Parallels.Longitudes))
		for j, lat := range res.Parallels.Latitudes[i] {
			py[j] = mercY(lat)
		}
		series = append(series, line(geomag.Label(target), res.Parallels.Longitudes, py, solid(colorBlue)))
		labels.Annotations = append(labels.Annotations, chart.Value2{
			XValue: res.Parallels.Longitudes[0], YValue: py[0], Label: geomag.Label(target),
		})
	}
	if len(res.Parallels.Targets) > 0 {
		series = append(series, labels)
	}

	tr := res.Terminator
	if len(tr.Longitudes) > 0 {
		ty := make([]float64, len(tr.Latitudes))
		for i, lat := range tr.Latitudes {
			ty[i] = mercY(lat)
		}
		series = append(series, line("terminator", tr.Longitudes, ty, dashed(colorGray)))
	}
	series = append(series,
		chart.ContinuousSeries{Name: "track", XValues: lons, YValues: ys, Style: trackStyle(len(lons))},
		endpointLabels(res, lons, ys),
	)

	ylo, yhi := mercY(-mercLimit), mercY(mercLimit)
	c := &chart.Chart{
		Title:      "Orbit (Mercator projection)",
		Width:      w,
		Height:     h,
		Background: padding(),
		XAxis:      chart.XAxis{Range: fixedRange(-180, 180), Ticks: longitudeTicks()},
		YAxis:      chart.YAxis{Range: fixedRange(ylo, yhi), Ticks: latitudeTicks(mercY)},
		Series:     series,
	}
	if len(tr.Longitudes) > 0 {
		c.Elements = []chart.Renderable{nightShade(tr.Longitudes, tr.Latitudes, tr.NightPole(), -180, 180, ylo, yhi)}
	}
	return c, true
}

// nightShade fills the area between the terminator and the night pole.
func nightShade(lons, lats []float64, pole, xlo, xhi, ylo, yhi float64) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, _ chart.Style) {
		px := func(lon float64) int {
			return box.Left + int(math.Round((lon-xlo)/(xhi-xlo)*float64(box.Width())))
		}
		py := func(lat float64) int {
			return box.Bottom - int(math.Round((mercY(lat)-ylo)/(yhi-ylo)*float64(box.Height())))
		}
		r.SetFillColor(colorNight)
		r.SetStrokeWidth(0)
		r.MoveTo(px(lons[0]), py(pole))
		for i, lon := range lons {
			r.LineTo(px(lon), py(lats[i]))
		}
		r.LineTo(px(xhi), py(lats[len(lats)-1]))
		r.LineTo(px(xhi), py(pole))
		r.Close()
		r.Fill()
	}
}

// orthographic projects lat/lon onto the plane tangent at the pole. ok is
// false on the far hemisphere.
func orthographic(lat, lon, pole float64) (x, y float64, ok bool) {
	phi, lam, phi0 := lat*deg, lon*deg, pole*deg
	cosc := math.Sin(phi0)*math.Sin(phi) + math.Cos(phi0)*math.Cos(phi)*math.Cos(lam)
	x = math.Cos(phi) * math.Sin(lam)
	y = math.Cos(phi0)*math.Sin(phi) - math.Sin(phi0)*math.Cos(phi)*math.Cos(lam)
	return x, y, cosc >= 0
}

// visibleRuns splits a lat/lon polyline into the runs visible from pole.
func visibleRuns(lats, lons []float64, pole float64) (runs [][2][]float64) {
	var xs, ys []float64
	flush := func() {
		if len(xs) > 1 {
			runs = append(runs, [2][]float64{xs, ys})
		}
		xs, ys = nil, nil
	}
	for i := range lats {
		x, y, ok := orthographic(lats[i], lons[i], pole)
		if !ok {
			flush()
			continue
		}
		xs, ys = append(xs, x), append(ys, y)
	}
	flush()
	return runs
}

// orthoChart draws the same overlays as mercatorChart on a polar orthographic view.
func orthoChart(res *quicklook.Result, pole float64, w, h int) (*chart.Chart, bool) {
	lats, lons := res.MEPD.Latitudes(), res.MEPD.Longitudes()
	var tx, ty []float64
	for i := range lats {
		if x, y, ok := orthographic(lats[i], lons[i], pole); ok {
			tx, ty = append(tx, x), append(ty, y)
		}
	}
	if len(tx) == 0 {
		return nil, false
	}

	// Earth limb and graticule rings every 30°.
	var series []chart.Series
	limb := make([]float64, 361)
	for i := range limb {
		limb[i] = float64(i - 180)
	}
	for _, ring := range []float64{0, 30, 60} {
		lat := ring * math.Copysign(1, pole)
		rl := make([]float64, len(limb))
		for i := range rl {
			rl[i] = lat
		}
		style := dashed(colorGray)
		if ring == 0 {
			style = solid(colorBlack)
		}
		for _, run := range visibleRuns(rl, limb, pole) {
			series = append(series, line("", run[0], run[1], style))
		}
	}

	for i, target := range res.Parallels.Targets {
		for _, run := range visibleRuns(res.Parallels.Latitudes[i], res.Parallels.Longitudes, pole) {
			series = append(series, line(geomag.Label(target), run[0], run[1], solid(colorBlue)))
		}
	}
	tr := res.Terminator
	for _, run := range visibleRuns(tr.Latitudes, tr.Longitudes, pole) {
		series = append(series, line("terminator", run[0], run[1], dashed(colorGray)))
	}
	series = append(series, chart.ContinuousSeries{Name: "track", XValues: tx, YValues: ty, Style: trackStyle(len(tx))})

	title := "Orbit (Orthographic projection, south pole)"
	if pole > 0 {
		title = "Orbit (Orthographic projection, north pole)"
	}
	hidden := chart.Style{Hidden: true}
	side := h
	if w < h {
		side = w
	}
	return &chart.Chart{
		Title:      title,
		Width:      side,
		Height:     side,
		Background: padding(),
		XAxis:      chart.XAxis{Range: fixedRange(-1.05, 1.05), Style: hidden},
		YAxis:      chart.YAxis{Range: fixedRange(-1.05, 1.05), Style: hidden},
		Series:     series,
	}, true
}
