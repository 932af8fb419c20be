package layout

import (
	"fmt"
	"strings"

	"github.com/midbel/toml"
)

// fileLayout is the on-disk form of a layout revision:
//
//	instrument   = "MEPD"
//	block1_width = 281
//	block2_width = 19
//
//	[[channel]]
//	name   = "time"
//	block  = 1
//	start  = 10
//	length = 1
type fileLayout struct {
	Instrument  string        `toml:"instrument"`
	Block1Width int           `toml:"block1_width"`
	Block2Width int           `toml:"block2_width"`
	Channels    []fileChannel `toml:"channel"`
}

type fileChannel struct {
	Name   string `toml:"name"`
	Block  int    `toml:"block"`
	Start  int    `toml:"start"`
	Length int    `toml:"length"`
}

// LoadFile reads a layout from a TOML file and validates it.
func LoadFile(path string) (Layout, error) {
	var f fileLayout
	if err := toml.DecodeFile(path, &f); err != nil {
		return Layout{}, fmt.Errorf("decode layout %s: %w", path, err)
	}
	l := Layout{
		Instrument:  Instrument(strings.ToUpper(f.Instrument)),
		Block1Width: f.Block1Width,
		Block2Width: f.Block2Width,
		Entries:     make([]Entry, 0, len(f.Channels)),
	}
	for _, c := range f.Channels {
		l.Entries = append(l.Entries, Entry{
			Name:   c.Name,
			Block:  Block(c.Block),
			Start:  c.Start,
			Length: c.Length,
		})
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}
