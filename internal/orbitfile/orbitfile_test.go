package orbitfile

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
)

func name(group string, orbit int) string {
	return fmt.Sprintf("%s_2020_07_17_175115_%05d_L1.h5", group, orbit)
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
}

func TestParse(t *testing.T) {
	f, ok := Parse(name("MEPD_SCI", 8795))
	require.True(t, ok)
	assert.Equal(t, layout.MEPD, f.Instrument)
	assert.Equal(t, "MEPD_SCI", f.Group)
	assert.Equal(t, 8795, f.Orbit)

	for _, bad := range []string{"README.md", name("LEPD_SCI", 1), "HEPD_DIV_2020_07_17_175115_abcde.h5"} {
		_, ok := Parse(bad)
		assert.False(t, ok, bad)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		name("HEPD_DIV", 8795),
		name("MEPD_SCI", 8795),
		name("HEPD_DIV", 8796),
		"notes.txt",
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, name("MEPD_SCI", 8796)), 0o755))

	p, err := Find(dir, 8795)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name("HEPD_DIV", 8795)), p.HEPD.Path)
	assert.Equal(t, "MEPD_SCI", p.MEPD.Group)

	f, ok := p.Get(layout.MEPD)
	require.True(t, ok)
	assert.Equal(t, p.MEPD, f)

	_, err = Find(dir, 8796)
	assert.ErrorIs(t, err, ErrNoMatch, "directory entries are not files")

	_, err = Find(dir, 1)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFindInvalidOrbit(t *testing.T) {
	for _, orbit := range []int{-1, MaxOrbit + 1} {
		_, err := Find(t.TempDir(), orbit)
		assert.ErrorIs(t, err, ErrInvalidOrbit)
	}
}

func TestListSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, name("MEPD_SCI", 20), name("HEPD_DIV", 3), name("HEPD_DIV", 20))

	files, err := List(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, 3, files[0].Orbit)
	assert.Equal(t, layout.HEPD, files[1].Instrument)
	assert.Equal(t, layout.MEPD, files[2].Instrument)

	_, err = List(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFormatOrbit(t *testing.T) {
	assert.Equal(t, "08795", FormatOrbit(8795))
	assert.Equal(t, "00007", FormatOrbit(7))
	assert.Equal(t, "12345", FormatOrbit(12345))
}
