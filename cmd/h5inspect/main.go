// Command h5inspect prints the block shapes of telemetry files and checks
// them against the record layouts.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/seonghohan1228/plot-satellite-v2/internal/h5store"
	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
	"github.com/seonghohan1228/plot-satellite-v2/internal/orbitfile"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: h5inspect FILE...")
		os.Exit(2)
	}

	failed := 0
	for _, path := range os.Args[1:] {
		if err := inspect(path); err != nil {
			logger.Error("inspect failed", "path", path, "error", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func inspect(path string) error {
	f, ok := orbitfile.Parse(filepath.Base(path))
	if !ok {
		return fmt.Errorf("%s: %w", path, orbitfile.ErrNoMatch)
	}
	l, err := layout.ForInstrument(f.Instrument)
	if err != nil {
		return err
	}

	infos, err := h5store.Inspect(path, f.Group)
	if err != nil {
		return err
	}
	fmt.Printf("%s: instrument=%s group=%s orbit=%s\n", f.Name, f.Instrument, f.Group, orbitfile.FormatOrbit(f.Orbit))

	widths := []int{l.Block1Width, l.Block2Width}
	for i, info := range infos {
		status := "ok"
		if info.Cols < widths[i] {
			status = fmt.Sprintf("TOO NARROW (layout needs %d)", widths[i])
		}
		fmt.Printf("  %-28s %6d x %-4d %s\n", info.Path, info.Rows, info.Cols, status)
	}
	if infos[0].Rows != infos[1].Rows {
		fmt.Printf("  row counts differ: %d vs %d\n", infos[0].Rows, infos[1].Rows)
	}
	return nil
}
