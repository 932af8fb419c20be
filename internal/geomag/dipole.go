package geomag

import (
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/seonghohan1228/plot-satellite-v2/internal/transform"
)

// gauss holds the degree-1 IGRF coefficients (nT) of one model epoch.
type gauss struct {
	year          float64
	g10, g11, h11 float64
}

var igrf = []gauss{
	{2000, -29619.4, -1728.2, 5186.1},
	{2005, -29554.63, -1669.05, 5077.99},
	{2010, -29496.57, -1586.42, 4944.26},
	{2015, -29441.46, -1501.77, 4795.99},
	{2020, -29403.41, -1451.37, 4653.35},
	{2025, -29350.0, -1410.3, 4545.5},
}

// Secular variation (nT/yr) past the last epoch.
var igrfSV = gauss{g10: 12.6, g11: 10.0, h11: -21.5}

// coefficients interpolates the table at a decimal year. Dates before the
// first epoch use it unchanged.
func coefficients(year float64) gauss {
	first, last := igrf[0], igrf[len(igrf)-1]
	switch {
	case year <= first.year:
		return first
	case year >= last.year:
		dt := year - last.year
		return gauss{year, last.g10 + igrfSV.g10*dt, last.g11 + igrfSV.g11*dt, last.h11 + igrfSV.h11*dt}
	}
	for i := 1; i < len(igrf); i++ {
		a, b := igrf[i-1], igrf[i]
		if year <= b.year {
			f := (year - a.year) / (b.year - a.year)
			return gauss{
				year: year,
				g10:  a.g10 + f*(b.g10-a.g10),
				g11:  a.g11 + f*(b.g11-a.g11),
				h11:  a.h11 + f*(b.h11-a.h11),
			}
		}
	}
	return last
}

// decimalYear uses the Julian day so the epoch agrees with the orbit tooling.
func decimalYear(t time.Time) float64 {
	t = t.UTC()
	jd := satellite.JDay(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	return 2000.0 + (jd-2451545.0)/365.25
}

// Dipole converts between geographic and centered-dipole geomagnetic
// coordinates. The dipole axis follows the IGRF at the conversion instant
// unless Epoch pins it.
type Dipole struct {
	Epoch time.Time
}

type dipoleAxes struct{ x, y, z transform.Vec3 }

func (d Dipole) axes(t time.Time) dipoleAxes {
	if !d.Epoch.IsZero() {
		t = d.Epoch
	}
	c := coefficients(decimalYear(t))
	z := transform.Vec3{X: -c.g11, Y: -c.h11, Z: -c.g10}.Unit()
	y := transform.Vec3{Z: 1}.Cross(z).Unit()
	return dipoleAxes{x: y.Cross(z), y: y, z: z}
}

// Pole returns the geographic position of the northern geomagnetic pole at t.
func (d Dipole) Pole(t time.Time) (latDeg, lonDeg float64) {
	_, lat, lon := transform.ToSpherical(d.axes(t).z)
	return lat, lon
}

func (d Dipole) Convert(p Spherical, t time.Time, from, to Frame) (Spherical, error) {
	var out [1]Spherical
	if err := d.ConvertBatch([]Spherical{p}, t, from, to, out[:]); err != nil {
		return Spherical{}, err
	}
	return out[0], nil
}

func (d Dipole) ConvertBatch(ps []Spherical, t time.Time, from, to Frame, out []Spherical) error {
	if len(out) != len(ps) {
		return fmt.Errorf("dipole: %d outputs for %d positions", len(out), len(ps))
	}
	for _, f := range []Frame{from, to} {
		if f != FrameGEO && f != FrameMAG {
			return fmt.Errorf("dipole: %w %q", ErrUnsupportedFrame, f)
		}
	}
	ax := d.axes(t)
	for i, p := range ps {
		if !(p.R > 0) || math.IsInf(p.R, 0) || math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.Abs(p.Lat) > 90 {
			return fmt.Errorf("dipole: %w: %+v", ErrInvalidPosition, p)
		}
		if from == to {
			out[i] = p
			continue
		}
		v := transform.FromSpherical(p.R, p.Lat, p.Lon)
		var w transform.Vec3
		if from == FrameGEO {
			w = transform.Vec3{X: v.Dot(ax.x), Y: v.Dot(ax.y), Z: v.Dot(ax.z)}
		} else {
			w = transform.Vec3{
				X: v.X*ax.x.X + v.Y*ax.y.X + v.Z*ax.z.X,
				Y: v.X*ax.x.Y + v.Y*ax.y.Y + v.Z*ax.z.Y,
				Z: v.X*ax.x.Z + v.Y*ax.y.Z + v.Z*ax.z.Z,
			}
		}
		r, lat, lon := transform.ToSpherical(w)
		out[i] = Spherical{R: r, Lat: lat, Lon: lon}
	}
	return nil
}
