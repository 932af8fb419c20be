package transform

import "math"

// WGS-84 ellipsoid parameters.
const (
	wgs84A  = 6378137.0             // semi-major axis (meters)
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared
)

// EarthRadiusM is the geomagnetic reference radius (IGRF), used to express
// radial distances in Earth radii.
const EarthRadiusM = 6371200.0

const (
	deg = math.Pi / 180.0
	rad = 180.0 / math.Pi
)

// Vec3 is a Cartesian vector.
type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec3{v.X / n, v.Y / n, v.Z / n}
}

// FromSpherical converts a radius and latitude/longitude in degrees to Cartesian.
func FromSpherical(r, latDeg, lonDeg float64) Vec3 {
	lat, lon := latDeg*deg, lonDeg*deg
	return Vec3{
		X: r * math.Cos(lat) * math.Cos(lon),
		Y: r * math.Cos(lat) * math.Sin(lon),
		Z: r * math.Sin(lat),
	}
}

// ToSpherical is the inverse of FromSpherical. Longitude is in (-180, 180].
func ToSpherical(v Vec3) (r, latDeg, lonDeg float64) {
	r = v.Norm()
	if r == 0 {
		return 0, 0, 0
	}
	return r, math.Asin(clamp(v.Z/r, -1, 1)) * rad, math.Atan2(v.Y, v.X) * rad
}

// GeodeticPoint holds a geodetic position (latitude/longitude in degrees, altitude in meters).
type GeodeticPoint struct {
	LatDeg, LonDeg, AltM float64
}

// GeodeticToECEF converts a WGS-84 geodetic position to ECEF meters.
func GeodeticToECEF(p GeodeticPoint) Vec3 {
	lat, lon := p.LatDeg*deg, p.LonDeg*deg
	sinLat := math.Sin(lat)

	// Radius of curvature in the prime vertical.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return Vec3{
		X: (n + p.AltM) * math.Cos(lat) * math.Cos(lon),
		Y: (n + p.AltM) * math.Cos(lat) * math.Sin(lon),
		Z: (n*(1-wgs84E2) + p.AltM) * sinLat,
	}
}

// GeodeticToGeocentric returns the geocentric radius in Earth radii and the
// geocentric latitude/longitude of a geodetic position.
func GeodeticToGeocentric(p GeodeticPoint) (rRe, latDeg, lonDeg float64) {
	r, lat, lon := ToSpherical(GeodeticToECEF(p))
	return r / EarthRadiusM, lat, lon
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
