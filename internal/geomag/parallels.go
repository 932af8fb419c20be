package geomag

import (
	"fmt"
	"math"
)

// DefaultParallels are the geomagnetic latitudes traced on the orbit map.
var DefaultParallels = []float64{-60, -30, 0, 30, 60}

// NearestIndex returns the index of the element of seq closest to target.
// Ties resolve to the lowest index. It returns -1 for an empty seq.
func NearestIndex(seq []float64, target float64) int {
	best, bestDiff := -1, math.Inf(1)
	for i, v := range seq {
		if d := math.Abs(v - target); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	if best < 0 && len(seq) > 0 {
		return 0
	}
	return best
}

// ParallelTrace gives, for each target geomagnetic latitude, the geographic
// latitude where that parallel crosses every grid meridian.
type ParallelTrace struct {
	Targets    []float64
	Longitudes []float64
	Latitudes  [][]float64
}

// ExtractParallels traces each target parallel through the grid.
func ExtractParallels(g *Grid, targets []float64) ParallelTrace {
	pt := ParallelTrace{
		Targets:    append([]float64(nil), targets...),
		Longitudes: Longitudes(),
		Latitudes:  make([][]float64, len(targets)),
	}
	for i := range pt.Latitudes {
		pt.Latitudes[i] = make([]float64, GridCols)
	}
	for col := 0; col < GridCols; col++ {
		column := g.Column(col)
		for i, target := range targets {
			pt.Latitudes[i][col] = GeoLatitude(NearestIndex(column, target))
		}
	}
	return pt
}

// Label formats a target latitude for the map legend, e.g. "30S", "0", "60N".
func Label(lat float64) string {
	switch {
	case lat < 0:
		return fmt.Sprintf("%gS", -lat)
	case lat > 0:
		return fmt.Sprintf("%gN", lat)
	}
	return "0"
}
