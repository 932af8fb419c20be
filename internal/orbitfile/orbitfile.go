// Package orbitfile locates the HEPD and MEPD telemetry files of an orbit.
//
// File names start with the HDF5 group, e.g. "HEPD_DIV" or "MEPD_SCI", and
// carry the zero-padded orbit number at characters [27,32).
package orbitfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
)

const (
	orbitStart = 27
	orbitEnd   = 32
	groupLen   = 8

	// MaxOrbit is the largest orbit number a file name can carry.
	MaxOrbit = 99999
)

var (
	ErrInvalidOrbit = errors.New("invalid orbit number")
	ErrNoMatch      = errors.New("no matching file")
)

// File is one recognized telemetry file.
type File struct {
	Name       string
	Path       string
	Instrument layout.Instrument
	Group      string
	Orbit      int
}

// Pair holds both instrument files of one orbit.
type Pair struct {
	HEPD File
	MEPD File
}

// FormatOrbit renders an orbit number the way file names and plot titles carry it.
func FormatOrbit(orbit int) string { return fmt.Sprintf("%05d", orbit) }

// Group returns the HDF5 group encoded in a file name.
func Group(name string) string {
	if len(name) < groupLen {
		return name
	}
	return name[:groupLen]
}

// Parse recognizes a telemetry file name.
func Parse(name string) (File, bool) {
	if len(name) < orbitEnd {
		return File{}, false
	}
	inst := layout.Instrument(name[:4])
	if inst != layout.HEPD && inst != layout.MEPD {
		return File{}, false
	}
	orbit, err := strconv.Atoi(name[orbitStart:orbitEnd])
	if err != nil || orbit < 0 {
		return File{}, false
	}
	return File{Name: name, Instrument: inst, Group: Group(name), Orbit: orbit}, true
}

// List returns the recognized files in dir sorted by orbit, then name.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing data dir: %w", err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, ok := Parse(e.Name())
		if !ok {
			continue
		}
		f.Path = filepath.Join(dir, f.Name)
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Orbit != files[j].Orbit {
			return files[i].Orbit < files[j].Orbit
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Find returns the HEPD and MEPD files of orbit. When several files of one
// instrument match, the last in name order wins.
func Find(dir string, orbit int) (Pair, error) {
	if orbit < 0 || orbit > MaxOrbit {
		return Pair{}, fmt.Errorf("%w: %d", ErrInvalidOrbit, orbit)
	}
	files, err := List(dir)
	if err != nil {
		return Pair{}, err
	}

	var p Pair
	for _, f := range files {
		if f.Orbit != orbit {
			continue
		}
		switch f.Instrument {
		case layout.HEPD:
			p.HEPD = f
		case layout.MEPD:
			p.MEPD = f
		}
	}
	switch {
	case p.HEPD.Name == "" && p.MEPD.Name == "":
		return Pair{}, fmt.Errorf("%w for orbit %s in %s", ErrNoMatch, FormatOrbit(orbit), dir)
	case p.HEPD.Name == "":
		return Pair{}, fmt.Errorf("%w: no HEPD file for orbit %s", ErrNoMatch, FormatOrbit(orbit))
	case p.MEPD.Name == "":
		return Pair{}, fmt.Errorf("%w: no MEPD file for orbit %s", ErrNoMatch, FormatOrbit(orbit))
	}
	return p, nil
}

// Get returns the file of one instrument.
func (p Pair) Get(inst layout.Instrument) (File, bool) {
	switch inst {
	case layout.HEPD:
		return p.HEPD, p.HEPD.Name != ""
	case layout.MEPD:
		return p.MEPD, p.MEPD.Name != ""
	}
	return File{}, false
}
