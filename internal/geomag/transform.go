// Package geomag builds the geomagnetic latitude reference grid and the
// parallel traces drawn over the orbit map.
package geomag

import (
	"errors"
	"time"
)

// Frame names a spherical coordinate system.
type Frame string

const (
	FrameGEO Frame = "GEO"
	FrameMAG Frame = "MAG"
)

// Spherical is a position with R in Earth radii and angles in degrees.
type Spherical struct {
	R   float64
	Lat float64
	Lon float64
}

// Transform converts a spherical position between frames at instant t.
type Transform interface {
	Convert(p Spherical, t time.Time, from, to Frame) (Spherical, error)
}

// BatchTransform converts many positions sharing one instant in a single call.
// out has the same length as ps.
type BatchTransform interface {
	Transform
	ConvertBatch(ps []Spherical, t time.Time, from, to Frame, out []Spherical) error
}

// TransformFunc adapts a function to the Transform interface.
type TransformFunc func(p Spherical, t time.Time, from, to Frame) (Spherical, error)

func (f TransformFunc) Convert(p Spherical, t time.Time, from, to Frame) (Spherical, error) {
	return f(p, t, from, to)
}

var (
	ErrUnsupportedFrame = errors.New("unsupported frame")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrNonFinite        = errors.New("non-finite result")
)
