// Package solar locates the subsolar point and the day/night terminator.
package solar

import (
	"math"
	"time"

	"github.com/seonghohan1228/plot-satellite-v2/internal/transform"
)

const (
	deg = math.Pi / 180
	rad = 180 / math.Pi

	perihelion = 282.9400          // argument of perihelion + node, degrees
	obliquity  = 23.43929111 * deg // J2000 obliquity of the ecliptic
)

// Subsolar returns the geographic point where the sun is at zenith at t.
// The ecliptic longitude is the low-precision series of Montenbruck & Pfleger,
// good to about 0.01° over this century.
func Subsolar(t time.Time) (latDeg, lonDeg float64) {
	tc := transform.JulianCenturies(t)
	m := (357.5256 + 35999.049*tc) * deg
	// 1.3972°/century refers the longitude to the equinox of date, matching GMST.
	ecl := (perihelion + m*rad + (6892.0/3600)*math.Sin(m) + (72.0/3600)*math.Sin(2*m) + 1.3972*tc) * deg

	x := math.Cos(ecl)
	y := math.Sin(ecl) * math.Cos(obliquity)
	z := math.Sin(ecl) * math.Sin(obliquity)

	ra := math.Atan2(y, x)
	dec := math.Asin(z)
	lon := normalize((ra - transform.GMST(t)) * rad)
	return dec * rad, lon
}

// Terminator is the day/night boundary sampled at fixed longitudes.
type Terminator struct {
	Time        time.Time
	SubsolarLat float64
	SubsolarLon float64
	Longitudes  []float64
	Latitudes   []float64
}

// NightPole returns the latitude (+90 or -90) of the pole inside the night side.
func (tr Terminator) NightPole() float64 {
	if tr.SubsolarLat >= 0 {
		return -90
	}
	return 90
}

// IsNight reports whether the sun is below the horizon at lat, lon.
func (tr Terminator) IsNight(latDeg, lonDeg float64) bool {
	p := transform.FromSpherical(1, latDeg, lonDeg)
	s := transform.FromSpherical(1, tr.SubsolarLat, tr.SubsolarLon)
	return p.Dot(s) < 0
}

// TerminatorAt samples the terminator latitude at each given longitude.
func TerminatorAt(t time.Time, lons []float64) Terminator {
	lat, lon := Subsolar(t)
	tr := Terminator{
		Time:        t,
		SubsolarLat: lat,
		SubsolarLon: lon,
		Longitudes:  append([]float64(nil), lons...),
		Latitudes:   make([]float64, len(lons)),
	}

	// Equinox: the terminator runs along a meridian pair.
	tanDec := math.Tan(lat * deg)
	if math.Abs(tanDec) < 1e-9 {
		tanDec = math.Copysign(1e-9, tanDec)
	}
	for i, l := range lons {
		tr.Latitudes[i] = math.Atan(-math.Cos((l-lon)*deg)/tanDec) * rad
	}
	return tr
}

func normalize(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
