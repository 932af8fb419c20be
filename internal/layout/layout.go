// Package layout declares where each physical channel lives inside the raw
// telemetry blocks of the HEPD and MEPD instruments.
package layout

import (
	"errors"
	"fmt"
	"sort"
)

// Instrument identifies a detector payload.
type Instrument string

const (
	HEPD Instrument = "HEPD"
	MEPD Instrument = "MEPD"
)

// Block selects one of the two raw record blocks of a file.
type Block int

const (
	Block1 Block = 1
	Block2 Block = 2
)

func (b Block) String() string {
	return fmt.Sprintf("block%d", int(b))
}

// Entry places a named channel on a contiguous column range of one block.
type Entry struct {
	Name   string
	Block  Block
	Start  int
	Length int
}

// End returns the exclusive end column of the entry.
func (e Entry) End() int { return e.Start + e.Length }

// Layout is the full channel table for one instrument revision.
type Layout struct {
	Instrument  Instrument
	Block1Width int
	Block2Width int
	Entries     []Entry
}

// ErrConfiguration is matched by every *ConfigurationError.
var ErrConfiguration = errors.New("layout configuration")

// ConfigurationError reports a layout that cannot be applied to any record.
type ConfigurationError struct {
	Instrument Instrument
	Channel    string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.Channel == "" {
		return fmt.Sprintf("layout %s: %s", e.Instrument, e.Reason)
	}
	return fmt.Sprintf("layout %s: channel %q: %s", e.Instrument, e.Channel, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Width returns the declared width of block b.
func (l Layout) Width(b Block) int {
	switch b {
	case Block1:
		return l.Block1Width
	case Block2:
		return l.Block2Width
	}
	return 0
}

// Entry looks up a channel by name.
func (l Layout) Entry(name string) (Entry, bool) {
	for _, e := range l.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the declared channel names in table order.
func (l Layout) Names() []string {
	names := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		names[i] = e.Name
	}
	return names
}

// Require reports the first of names the layout does not declare.
func (l Layout) Require(names ...string) error {
	declared := make(map[string]bool, len(l.Entries))
	for _, n := range l.Names() {
		declared[n] = true
	}
	for _, n := range names {
		if !declared[n] {
			return &ConfigurationError{Instrument: l.Instrument, Channel: n, Reason: "required channel not declared"}
		}
	}
	return nil
}

// Validate checks every entry against the declared block widths. It is meant
// to run once, before any record is decoded.
func (l Layout) Validate() error {
	cfgErr := func(channel, format string, args ...any) error {
		return &ConfigurationError{Instrument: l.Instrument, Channel: channel, Reason: fmt.Sprintf(format, args...)}
	}
	if l.Instrument == "" {
		return cfgErr("", "instrument not set")
	}
	if len(l.Entries) == 0 {
		return cfgErr("", "no channels declared")
	}
	if l.Block1Width < 1 || l.Block2Width < 1 {
		return cfgErr("", "block widths must be positive (block1=%d, block2=%d)", l.Block1Width, l.Block2Width)
	}

	seen := make(map[string]bool, len(l.Entries))
	for _, e := range l.Entries {
		if e.Name == "" {
			return cfgErr("", "channel without a name")
		}
		if seen[e.Name] {
			return cfgErr(e.Name, "declared twice")
		}
		seen[e.Name] = true

		if e.Block != Block1 && e.Block != Block2 {
			return cfgErr(e.Name, "unknown block %d", int(e.Block))
		}
		if e.Length < 1 {
			return cfgErr(e.Name, "length %d < 1", e.Length)
		}
		if e.Start < 0 {
			return cfgErr(e.Name, "negative start %d", e.Start)
		}
		if w := l.Width(e.Block); e.End() > w {
			return cfgErr(e.Name, "columns [%d,%d) exceed %s width %d", e.Start, e.End(), e.Block, w)
		}
	}

	// Overlapping ranges inside a block mean a mistyped table.
	for _, b := range []Block{Block1, Block2} {
		var inBlock []Entry
		for _, e := range l.Entries {
			if e.Block == b {
				inBlock = append(inBlock, e)
			}
		}
		sort.Slice(inBlock, func(i, j int) bool { return inBlock[i].Start < inBlock[j].Start })
		for i := 1; i < len(inBlock); i++ {
			prev, cur := inBlock[i-1], inBlock[i]
			if cur.Start < prev.End() {
				return cfgErr(cur.Name, "overlaps %q in %s", prev.Name, b)
			}
		}
	}
	return nil
}
