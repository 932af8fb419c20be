package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	for _, l := range []Layout{HEPDLayout(), MEPDLayout()} {
		t.Run(string(l.Instrument), func(t *testing.T) {
			require.NoError(t, l.Validate())
		})
	}
}

func TestDefaultChannels(t *testing.T) {
	mepd := MEPDLayout()
	e, ok := mepd.Entry(Detector(3))
	require.True(t, ok)
	assert.Equal(t, Entry{Name: "detector_3", Block: Block1, Start: 217, Length: 64}, e)

	_, ok = HEPDLayout().Entry(SubunitID)
	assert.False(t, ok, "HEPD has no subunit channel")

	pos, ok := HEPDLayout().Entry(Position)
	require.True(t, ok)
	assert.Equal(t, Block2, pos.Block)
	assert.Equal(t, 19, pos.End())
}

func TestRequire(t *testing.T) {
	for _, l := range []Layout{HEPDLayout(), MEPDLayout()} {
		assert.NoError(t, l.Require(Required(l.Instrument)...), l.Instrument)
	}

	err := HEPDLayout().Require(Required(MEPD)...)
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, SubunitID, ce.Channel)
	assert.Equal(t, HEPD, ce.Instrument)
}

func TestValidateRejects(t *testing.T) {
	base := func(entries ...Entry) Layout {
		return Layout{Instrument: MEPD, Block1Width: 20, Block2Width: 10, Entries: entries}
	}
	tests := []struct {
		name    string
		layout  Layout
		channel string
	}{
		{"zero length", base(Entry{Name: "a", Block: Block1, Start: 0, Length: 0}), "a"},
		{"negative start", base(Entry{Name: "a", Block: Block1, Start: -1, Length: 2}), "a"},
		{"past block width", base(Entry{Name: "a", Block: Block2, Start: 8, Length: 3}), "a"},
		{"unknown block", base(Entry{Name: "a", Block: 3, Start: 0, Length: 1}), "a"},
		{"duplicate", base(
			Entry{Name: "a", Block: Block1, Start: 0, Length: 1},
			Entry{Name: "a", Block: Block2, Start: 0, Length: 1},
		), "a"},
		{"overlap", base(
			Entry{Name: "a", Block: Block1, Start: 0, Length: 5},
			Entry{Name: "b", Block: Block1, Start: 4, Length: 2},
		), "b"},
		{"empty table", base(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.channel, cfgErr.Channel)
			assert.Equal(t, MEPD, cfgErr.Instrument)
		})
	}
}

func TestSameColumnsInDifferentBlocks(t *testing.T) {
	l := Layout{
		Instrument:  HEPD,
		Block1Width: 4,
		Block2Width: 4,
		Entries: []Entry{
			{Name: "a", Block: Block1, Start: 0, Length: 4},
			{Name: "b", Block: Block2, Start: 0, Length: 4},
		},
	}
	assert.NoError(t, l.Validate())
}

func TestForInstrument(t *testing.T) {
	l, err := ForInstrument(HEPD)
	require.NoError(t, err)
	assert.Equal(t, HEPDLayout().Names(), l.Names())

	_, err = ForInstrument("LEPD")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mepd.toml")
	doc := `instrument = "mepd"
block1_width = 12
block2_width = 3

[[channel]]
name = "time"
block = 1
start = 10
length = 1

[[channel]]
name = "position"
block = 2
start = 0
length = 3
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	l, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, MEPD, l.Instrument)
	assert.Equal(t, []string{"time", "position"}, l.Names())

	e, ok := l.Entry("position")
	require.True(t, ok)
	assert.Equal(t, Entry{Name: "position", Block: Block2, Start: 0, Length: 3}, e)
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	doc := `instrument = "HEPD"
block1_width = 4
block2_width = 4

[[channel]]
name = "time"
block = 1
start = 3
length = 2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrConfiguration)
}
