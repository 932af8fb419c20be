// Package quicklook runs the per-orbit processing chain: extraction, subunit
// split, derived quantities, geomagnetic grid and terminator.
package quicklook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seonghohan1228/plot-satellite-v2/internal/derive"
	"github.com/seonghohan1228/plot-satellite-v2/internal/geomag"
	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
	"github.com/seonghohan1228/plot-satellite-v2/internal/metrics"
	"github.com/seonghohan1228/plot-satellite-v2/internal/solar"
	"github.com/seonghohan1228/plot-satellite-v2/internal/subunit"
	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
	"github.com/seonghohan1228/plot-satellite-v2/internal/transform"
)

// Source yields the two raw record blocks of an instrument.
type Source interface {
	Blocks(ctx context.Context, inst layout.Instrument) (block1, block2 telemetry.Block, err error)
}

// Config fixes the tables and constants of a run.
type Config struct {
	HEPDLayout    layout.Layout
	MEPDLayout    layout.Layout
	Bands         derive.BandConfig
	SubunitTarget int
	Parallels     []float64

	// Epoch pins the geomagnetic grid instant. Zero uses the first MEPD record.
	Epoch time.Time
}

// DefaultConfig returns the built-in layouts and constants.
func DefaultConfig() Config {
	return Config{
		HEPDLayout:    layout.HEPDLayout(),
		MEPDLayout:    layout.MEPDLayout(),
		Bands:         derive.DefaultBands,
		SubunitTarget: subunit.DefaultTarget,
		Parallels:     geomag.DefaultParallels,
	}
}

// Runner processes one orbit at a time.
type Runner struct {
	cfg       Config
	builder   *geomag.Builder
	transform geomag.Transform
	logger    *slog.Logger
}

// NewRunner validates both layouts up front so a bad table never reaches data.
func NewRunner(cfg Config, tr geomag.Transform, builder *geomag.Builder, logger *slog.Logger) (*Runner, error) {
	for _, l := range []layout.Layout{cfg.HEPDLayout, cfg.MEPDLayout} {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.HEPDLayout.Instrument != layout.HEPD || cfg.MEPDLayout.Instrument != layout.MEPD {
		return nil, &layout.ConfigurationError{
			Instrument: cfg.MEPDLayout.Instrument,
			Reason:     fmt.Sprintf("layouts for %s/%s, want HEPD/MEPD", cfg.HEPDLayout.Instrument, cfg.MEPDLayout.Instrument),
		}
	}
	for _, l := range []layout.Layout{cfg.HEPDLayout, cfg.MEPDLayout} {
		if err := l.Require(layout.Required(l.Instrument)...); err != nil {
			return nil, err
		}
	}
	if len(cfg.Parallels) == 0 {
		cfg.Parallels = geomag.DefaultParallels
	}
	return &Runner{cfg: cfg, builder: builder, transform: tr, logger: logger.With("component", "quicklook")}, nil
}

// Run processes orbit from src. Any failure aborts the run and no partial
// result is returned.
func (r *Runner) Run(ctx context.Context, orbit int, src Source) (*Result, error) {
	log := r.logger.With("orbit", orbit)

	hepdCh, err := r.extract(ctx, src, r.cfg.HEPDLayout)
	if err != nil {
		return nil, err
	}
	mepdCh, err := r.extract(ctx, src, r.cfg.MEPDLayout)
	if err != nil {
		return nil, err
	}

	hepd, err := r.hepd(hepdCh)
	if err != nil {
		return nil, fmt.Errorf("HEPD: %w", err)
	}
	mepd, err := r.mepd(mepdCh)
	if err != nil {
		return nil, fmt.Errorf("MEPD: %w", err)
	}

	start, end, _ := derive.Span(mepd.Time)
	altitude := mepd.Position.At(0, 2)
	epoch := r.cfg.Epoch
	if epoch.IsZero() {
		epoch = start
	}

	gridStart := time.Now()
	grid, err := r.builder.Build(ctx, altitude, epoch)
	if err != nil {
		return nil, err
	}
	metrics.ObserveGrid(time.Since(gridStart), geomag.GridRows*geomag.GridCols)

	if mepd.TrackMagLat, err = r.trackMagLat(mepd); err != nil {
		return nil, err
	}

	res := &Result{
		Orbit:      orbit,
		Start:      start,
		End:        end,
		HEPD:       hepd,
		MEPD:       mepd,
		Grid:       grid,
		Parallels:  geomag.ExtractParallels(grid, r.cfg.Parallels),
		Terminator: solar.TerminatorAt(start, geomag.Longitudes()),
	}

	log.Info("orbit processed",
		"start", start.Format(time.RFC3339),
		"duration_s", res.Duration(),
		"hepd_rows", len(hepd.Time),
		"mepd_a_rows", len(mepd.A.Time),
		"mepd_b_rows", len(mepd.B.Time),
		"altitude_m", altitude,
		"grid_workers", r.builder.Workers(),
	)
	if mepd.A.Empty() || mepd.B.Empty() {
		log.Warn("MEPD subunit absent this orbit", "target", r.cfg.SubunitTarget)
	}
	return res, nil
}

func (r *Runner) extract(ctx context.Context, src Source, l layout.Layout) (telemetry.Channels, error) {
	b1, b2, err := src.Blocks(ctx, l.Instrument)
	if err != nil {
		return nil, fmt.Errorf("read %s blocks: %w", l.Instrument, err)
	}
	chs, err := telemetry.Extract(l, b1, b2)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", l.Instrument, err)
	}
	metrics.SetExtractedRows(string(l.Instrument), b1.Rows)
	r.logger.Debug("channels extracted", "instrument", l.Instrument, "rows", b1.Rows, "channels", len(chs))
	return chs, nil
}

func (r *Runner) hepd(chs telemetry.Channels) (HEPDData, error) {
	var (
		out  HEPDData
		tels [3]telemetry.Channel
		err  error
	)
	get := func(name string) telemetry.Channel {
		var ch telemetry.Channel
		if err == nil {
			ch, err = chs.Get(name)
		}
		return ch
	}
	out.Time = get(layout.Time).Scalars()
	out.PacketCount = get(layout.PacketCount).Scalars()
	out.Position = get(layout.Position)
	out.MagneticField = get(layout.MagneticField)
	for i := range tels {
		tels[i] = get(layout.Telescope(i))
	}
	if err != nil {
		return out, err
	}

	igrf, err := derive.MagneticMagnitude(out.MagneticField)
	if err != nil {
		return out, err
	}
	out.IGRFMagnitude = igrf.Scalars()

	out.Bands, err = derive.SplitTelescopeBands(tels[0], tels[1], tels[2], r.cfg.Bands)
	return out, err
}

func (r *Runner) mepd(chs telemetry.Channels) (MEPDData, error) {
	var out MEPDData
	idCh, err := chs.Get(layout.SubunitID)
	if err != nil {
		return out, err
	}
	ids, err := subunit.IDs(idCh)
	if err != nil {
		return out, err
	}

	timeCh, err := chs.Get(layout.Time)
	if err != nil {
		return out, err
	}
	pcCh, err := chs.Get(layout.PacketCount)
	if err != nil {
		return out, err
	}
	if out.Position, err = chs.Get(layout.Position); err != nil {
		return out, err
	}
	if out.MagneticField, err = chs.Get(layout.MagneticField); err != nil {
		return out, err
	}
	if out.Position.Width() < 3 {
		return out, &telemetry.ShapeMismatchError{Channel: layout.Position, Reason: "need lat, lon, alt", Want: 3, Got: out.Position.Width()}
	}

	out.Time = timeCh.Scalars()
	target := r.cfg.SubunitTarget
	if out.A.Time, out.B.Time, err = subunit.PartitionSlice(out.Time, ids, target); err != nil {
		return out, err
	}
	if out.A.PacketCount, out.B.PacketCount, err = subunit.PartitionSlice(pcCh.Scalars(), ids, target); err != nil {
		return out, err
	}
	for i := range out.A.Detectors {
		det, err := chs.Get(layout.Detector(i))
		if err != nil {
			return out, err
		}
		if out.A.Detectors[i], out.B.Detectors[i], err = subunit.Partition(det, ids, target); err != nil {
			return out, err
		}
	}
	return out, nil
}

// trackMagLat converts each geodetic spacecraft position to geomagnetic latitude.
func (r *Runner) trackMagLat(m MEPDData) ([]float64, error) {
	out := make([]float64, m.Position.Len())
	for i := range out {
		rRe, lat, lon := transform.GeodeticToGeocentric(transform.GeodeticPoint{
			LatDeg: m.Position.At(i, 0),
			LonDeg: m.Position.At(i, 1),
			AltM:   m.Position.At(i, 2),
		})
		p, err := r.transform.Convert(geomag.Spherical{R: rRe, Lat: lat, Lon: lon}, derive.UnixTime(m.Time[i]), geomag.FrameGEO, geomag.FrameMAG)
		if err != nil {
			return nil, fmt.Errorf("track geomagnetic latitude at record %d: %w", i, err)
		}
		out[i] = p.Lat
	}
	return out, nil
}
