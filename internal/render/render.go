// Package render draws the quicklook panels of one orbit with go-chart.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/seonghohan1228/plot-satellite-v2/internal/orbitfile"
	"github.com/seonghohan1228/plot-satellite-v2/internal/quicklook"
)

// Format selects the output encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want png or svg)", s)
}

// Pole selects the centre of the orthographic panel.
type Pole float64

const (
	NorthPole Pole = 90
	SouthPole Pole = -90
)

// ParsePole accepts "north" or "south".
func ParsePole(s string) (Pole, error) {
	switch strings.ToLower(s) {
	case "north", "n":
		return NorthPole, nil
	case "south", "s":
		return SouthPole, nil
	}
	return 0, fmt.Errorf("unknown pole %q (want north or south)", s)
}

// Options controls where and how panels are written.
type Options struct {
	Dir    string
	Format Format
	Pole   Pole
	Width  int
	Height int
}

// DefaultOptions writes PNG panels to ./plots viewed from the south pole.
func DefaultOptions() Options {
	return Options{Dir: "plots", Format: PNG, Pole: SouthPole, Width: 1000, Height: 750}
}

// Renderer writes the quicklook figure set for an orbit.
type Renderer struct {
	opts   Options
	logger *slog.Logger
}

// New checks opts and returns a Renderer.
func New(opts Options, logger *slog.Logger) (*Renderer, error) {
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.Pole != NorthPole && opts.Pole != SouthPole {
		return nil, fmt.Errorf("pole must be %v or %v, got %v", NorthPole, SouthPole, opts.Pole)
	}
	if opts.Width < 200 || opts.Height < 150 {
		return nil, fmt.Errorf("panel size %dx%d too small", opts.Width, opts.Height)
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	return &Renderer{opts: opts, logger: logger.With("component", "render")}, nil
}

// panel is one chart of the figure. build reports false when there is
// nothing to draw, e.g. an absent subunit.
type panel struct {
	name  string
	build func(res *quicklook.Result) (*chart.Chart, bool)
}

func (rd *Renderer) panels() []panel {
	w, h := rd.opts.Width, rd.opts.Height
	return []panel{
		{"pc1", func(res *quicklook.Result) (*chart.Chart, bool) { return pc1Chart(res, w, h) }},
		{"orbit", func(res *quicklook.Result) (*chart.Chart, bool) { return mercatorChart(res, w, h) }},
		{"magfield", func(res *quicklook.Result) (*chart.Chart, bool) { return magneticChart(res, w, h) }},
		{"polar", func(res *quicklook.Result) (*chart.Chart, bool) { return orthoChart(res, float64(rd.opts.Pole), w, h) }},
		{"proton", func(res *quicklook.Result) (*chart.Chart, bool) { return protonChart(res, w, h) }},
		{"mepd_a", func(res *quicklook.Result) (*chart.Chart, bool) { return detectorChart(res, res.MEPD.A, "MEPD-A", w, h) }},
		{"electron", func(res *quicklook.Result) (*chart.Chart, bool) { return electronChart(res, w, h) }},
		{"mepd_b", func(res *quicklook.Result) (*chart.Chart, bool) { return detectorChart(res, res.MEPD.B, "MEPD-B", w, h) }},
		{"mlat", func(res *quicklook.Result) (*chart.Chart, bool) { return magLatChart(res, w, h) }},
	}
}

// The first compositePanels panels are tiled compositeColumns per row.
const (
	compositePanels  = 8
	compositeColumns = 2
)

// BaseName returns the file stem of an orbit's figure, e.g. "ORB_08795".
func BaseName(orbit int) string { return "ORB_" + orbitfile.FormatOrbit(orbit) }

// Render writes every non-empty panel and, for PNG, a composite figure,
// returning the written paths. Every file is produced in memory first. If any
// write fails, the files already written by this call are removed.
func (rd *Renderer) Render(res *quicklook.Result) ([]string, error) {
	start := time.Now()
	base := BaseName(res.Orbit)
	provider := chart.PNG
	if rd.opts.Format == SVG {
		provider = chart.SVG
	}

	var (
		outs  []output
		tiles []tile
	)
	for i, p := range rd.panels() {
		c, ok := p.build(res)
		if !ok {
			rd.logger.Info("panel skipped, no data", "panel", p.name, "orbit", res.Orbit)
			continue
		}
		var buf bytes.Buffer
		if err := c.Render(provider, &buf); err != nil {
			return nil, fmt.Errorf("render panel %s: %w", p.name, err)
		}
		outs = append(outs, output{
			path: filepath.Join(rd.opts.Dir, fmt.Sprintf("%s_%s.%s", base, p.name, rd.opts.Format)),
			data: buf.Bytes(),
		})
		if rd.opts.Format == PNG && i < compositePanels {
			tiles = append(tiles, tile{index: i, png: buf.Bytes()})
		}
	}

	if rd.opts.Format == PNG && len(tiles) > 0 {
		data, err := composite(res.Title(), tiles, rd.opts.Width, rd.opts.Height)
		if err != nil {
			return nil, err
		}
		outs = append(outs, output{path: filepath.Join(rd.opts.Dir, base+".png"), data: data})
	}

	if err := os.MkdirAll(rd.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	var paths []string
	for _, o := range outs {
		if err := writeFile(o.path, o.data); err != nil {
			for _, p := range paths {
				os.Remove(p)
			}
			return nil, err
		}
		paths = append(paths, o.path)
	}

	rd.logger.Info("figure rendered",
		"orbit", res.Orbit,
		"files", len(paths),
		"format", rd.opts.Format,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return paths, nil
}

type output struct {
	path string
	data []byte
}

// writeFile replaces path through a temporary file in the same directory, so
// a reader never sees a truncated file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
