package quicklook

import (
	"errors"
	"io/fs"

	"github.com/seonghohan1228/plot-satellite-v2/internal/geomag"
	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
	"github.com/seonghohan1228/plot-satellite-v2/internal/orbitfile"
	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

// Error kinds reported by Kind.
const (
	KindConfiguration = "configuration"
	KindShape         = "shape"
	KindGrid          = "grid"
	KindIO            = "io"
	KindOther         = "other"
)

// Kind classifies a run error for exit codes and metrics labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, layout.ErrConfiguration), errors.Is(err, orbitfile.ErrInvalidOrbit):
		return KindConfiguration
	case errors.Is(err, telemetry.ErrShapeMismatch):
		return KindShape
	case errors.Is(err, geomag.ErrGridComputation):
		return KindGrid
	case errors.Is(err, orbitfile.ErrNoMatch), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return KindIO
	}
	return KindOther
}
