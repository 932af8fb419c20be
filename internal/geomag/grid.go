package geomag

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/seonghohan1228/plot-satellite-v2/internal/transform"
)

// Grid dimensions: one row per integer latitude, one column per integer longitude.
const (
	GridRows = 181
	GridCols = 360
)

// GeoLatitude returns the geographic latitude of grid row i.
func GeoLatitude(row int) float64 { return float64(row - 90) }

// GeoLongitude returns the geographic longitude of grid column j.
func GeoLongitude(col int) float64 { return float64(col - 180) }

// RadialDistance converts an altitude in meters to Earth radii from the center.
func RadialDistance(altitudeM float64) float64 {
	return 1 + altitudeM/transform.EarthRadiusM
}

// Grid holds the geomagnetic latitude of every integer geographic
// latitude/longitude cell at one altitude and instant.
type Grid struct {
	AltitudeM float64
	Time      time.Time
	values    []float64
}

func newGrid(altitudeM float64, t time.Time) *Grid {
	return &Grid{AltitudeM: altitudeM, Time: t, values: make([]float64, GridRows*GridCols)}
}

// At returns the geomagnetic latitude at row, col.
func (g *Grid) At(row, col int) float64 { return g.values[row*GridCols+col] }

// Column returns the geomagnetic latitudes along one meridian, south to north.
func (g *Grid) Column(col int) []float64 {
	out := make([]float64, GridRows)
	for i := range out {
		out[i] = g.values[i*GridCols+col]
	}
	return out
}

// ErrGridComputation is matched by every *GridComputationError.
var ErrGridComputation = errors.New("grid computation")

// GridComputationError names the cell whose transform failed. Col is -1 when
// a batch transform rejected the whole row.
type GridComputationError struct {
	Row, Col int
	Lat, Lon float64
	Err      error
}

func (e *GridComputationError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("grid row (lat=%g): %v", e.Lat, e.Err)
	}
	return fmt.Sprintf("grid cell (lat=%g, lon=%g): %v", e.Lat, e.Lon, e.Err)
}

func (e *GridComputationError) Unwrap() error { return e.Err }

func (e *GridComputationError) Is(target error) bool { return target == ErrGridComputation }

func cellError(row, col int, err error) *GridComputationError {
	e := &GridComputationError{Row: row, Col: col, Lat: GeoLatitude(row), Err: err}
	if col >= 0 {
		e.Lon = GeoLongitude(col)
	}
	return e
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Longitudes returns the geographic longitude of every grid column.
func Longitudes() []float64 {
	out := make([]float64, GridCols)
	for j := range out {
		out[j] = GeoLongitude(j)
	}
	return out
}
