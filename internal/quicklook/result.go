package quicklook

import (
	"fmt"
	"time"

	"github.com/seonghohan1228/plot-satellite-v2/internal/derive"
	"github.com/seonghohan1228/plot-satellite-v2/internal/geomag"
	"github.com/seonghohan1228/plot-satellite-v2/internal/orbitfile"
	"github.com/seonghohan1228/plot-satellite-v2/internal/solar"
	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

// HEPDData is the high-energy instrument view of one orbit.
type HEPDData struct {
	Time          []float64 // UNIX seconds
	PacketCount   []float64
	Position      telemetry.Channel
	MagneticField telemetry.Channel
	IGRFMagnitude []float64
	Bands         derive.TelescopeBands
}

// Subunit holds the records written by one MEPD subunit.
type Subunit struct {
	Time        []float64
	PacketCount []float64
	Detectors   [4]telemetry.Channel
}

// Empty reports whether the subunit produced no records this orbit.
func (s Subunit) Empty() bool { return len(s.Time) == 0 }

// MEPDData is the medium-energy instrument view of one orbit.
type MEPDData struct {
	Time          []float64
	Position      telemetry.Channel
	MagneticField telemetry.Channel
	A             Subunit
	B             Subunit

	// TrackMagLat is the spacecraft geomagnetic latitude per record.
	TrackMagLat []float64
}

// Latitudes, Longitudes and Altitudes unpack the position channel.
func (m MEPDData) Latitudes() []float64  { return m.Position.Column(0) }
func (m MEPDData) Longitudes() []float64 { return m.Position.Column(1) }
func (m MEPDData) Altitudes() []float64  { return m.Position.Column(2) }

// Result is everything rendered for one orbit.
type Result struct {
	Orbit      int
	Start      time.Time
	End        time.Time
	HEPD       HEPDData
	MEPD       MEPDData
	Grid       *geomag.Grid
	Parallels  geomag.ParallelTrace
	Terminator solar.Terminator
}

// Duration is the MEPD coverage of the orbit in seconds.
func (r *Result) Duration() float64 {
	if len(r.MEPD.Time) == 0 {
		return 0
	}
	return r.MEPD.Time[len(r.MEPD.Time)-1] - r.MEPD.Time[0]
}

// Title is the figure heading, e.g.
// "Orbit: 08795   Date: 2020/07/17 17:51:15 - 18:24:55UT (2020 sec)".
func (r *Result) Title() string {
	return fmt.Sprintf("Orbit: %s   Date: %s - %sUT (%g sec)",
		orbitfile.FormatOrbit(r.Orbit),
		r.Start.UTC().Format("2006/01/02 15:04:05"),
		r.End.UTC().Format("15:04:05"),
		r.Duration(),
	)
}
