// Package derive computes secondary quantities from extracted channels.
package derive

import (
	"fmt"
	"math"
	"time"

	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

// Columns of the magnetic field channel holding the IGRF model vector.
const (
	IGRFX = 4
	IGRFY = 5
	IGRFZ = 6
)

// MagneticMagnitude returns |B| of the IGRF vector stored in columns 4..6.
func MagneticMagnitude(mag telemetry.Channel) (telemetry.Channel, error) {
	if mag.Width() <= IGRFZ {
		return telemetry.Channel{}, &telemetry.ShapeMismatchError{
			Channel: mag.Name(),
			Reason:  "magnetic field channel lacks IGRF columns",
			Want:    IGRFZ + 1,
			Got:     mag.Width(),
		}
	}
	norm, err := Norm3(mag.Column(IGRFX), mag.Column(IGRFY), mag.Column(IGRFZ))
	if err != nil {
		return telemetry.Channel{}, err
	}
	return telemetry.NewChannel("igrf_magnitude", 1, norm)
}

// Norm3 returns the Euclidean norm of each (x[i], y[i], z[i]).
func Norm3(x, y, z []float64) ([]float64, error) {
	if len(x) != len(y) || len(x) != len(z) {
		return nil, &telemetry.ShapeMismatchError{Reason: fmt.Sprintf("component lengths %d/%d/%d", len(x), len(y), len(z))}
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = math.Sqrt(x[i]*x[i] + y[i]*y[i] + z[i]*z[i])
	}
	return out, nil
}

// Range is a half-open bin interval [From, To).
type Range struct {
	From int
	To   int
}

func (r Range) overlaps(o Range) bool { return r.From < o.To && o.From < r.To }

// BandConfig selects the proton and electron bins of a telescope spectrum.
type BandConfig struct {
	Proton   Range
	Electron Range
}

// DefaultBands matches the HEPD energy binning.
var DefaultBands = BandConfig{
	Proton:   Range{From: 17, To: 21},
	Electron: Range{From: 2, To: 13},
}

// TelescopeBands holds the per-telescope proton and electron sub-spectra.
type TelescopeBands struct {
	Protons   [3]telemetry.Channel
	Electrons [3]telemetry.Channel
}

// SplitTelescopeBands cuts the proton and electron bins out of each telescope.
func SplitTelescopeBands(tel0, tel1, tel2 telemetry.Channel, cfg BandConfig) (TelescopeBands, error) {
	var out TelescopeBands
	if cfg.Proton.overlaps(cfg.Electron) {
		return out, &telemetry.ShapeMismatchError{
			Reason: fmt.Sprintf("proton bins %v overlap electron bins %v", cfg.Proton, cfg.Electron),
		}
	}
	for i, tel := range []telemetry.Channel{tel0, tel1, tel2} {
		p, err := tel.Slice(fmt.Sprintf("%s_proton", tel.Name()), cfg.Proton.From, cfg.Proton.To)
		if err != nil {
			return TelescopeBands{}, err
		}
		e, err := tel.Slice(fmt.Sprintf("%s_electron", tel.Name()), cfg.Electron.From, cfg.Electron.To)
		if err != nil {
			return TelescopeBands{}, err
		}
		out.Protons[i], out.Electrons[i] = p, e
	}
	return out, nil
}

// RelativeTime returns ts shifted so the first sample is zero.
func RelativeTime(ts []float64) []float64 {
	out := make([]float64, len(ts))
	if len(ts) == 0 {
		return out
	}
	for i, v := range ts {
		out[i] = v - ts[0]
	}
	return out
}

// Span returns the first and last instant of a UNIX-seconds series.
func Span(ts []float64) (start, end time.Time, ok bool) {
	if len(ts) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return UnixTime(ts[0]), UnixTime(ts[len(ts)-1]), true
}

// UnixTime converts fractional UNIX seconds to UTC.
func UnixTime(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}
