package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

func TestMagneticMagnitude(t *testing.T) {
	mag, err := telemetry.NewChannel("magnetic_field", 8, []float64{
		0, 0, 0, 0, 3, 4, 0, 0,
		1, 1, 1, 1, 2, 3, 6, 9,
	})
	require.NoError(t, err)

	b, err := MagneticMagnitude(mag)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Width())
	assert.InDeltaSlice(t, []float64{5, 7}, b.Scalars(), 1e-12)
}

func TestMagneticMagnitudeNarrow(t *testing.T) {
	mag, err := telemetry.NewChannel("magnetic_field", 6, make([]float64, 6))
	require.NoError(t, err)
	_, err = MagneticMagnitude(mag)
	assert.ErrorIs(t, err, telemetry.ErrShapeMismatch)
}

func TestNorm3(t *testing.T) {
	n, err := Norm3([]float64{3}, []float64{4}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, n)

	n, err = Norm3(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, n)

	_, err = Norm3([]float64{1}, nil, []float64{1})
	assert.ErrorIs(t, err, telemetry.ErrShapeMismatch)
}

func telescope(t *testing.T, name string, rows int) telemetry.Channel {
	t.Helper()
	data := make([]float64, rows*40)
	for i := 0; i < rows; i++ {
		for j := 0; j < 40; j++ {
			data[i*40+j] = float64(j)
		}
	}
	ch, err := telemetry.NewChannel(name, 40, data)
	require.NoError(t, err)
	return ch
}

func TestSplitTelescopeBands(t *testing.T) {
	bands, err := SplitTelescopeBands(
		telescope(t, "telescope_0", 2),
		telescope(t, "telescope_1", 2),
		telescope(t, "telescope_2", 2),
		DefaultBands,
	)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 4, bands.Protons[i].Width())
		assert.Equal(t, 11, bands.Electrons[i].Width())
		assert.Equal(t, []float64{17, 18, 19, 20}, bands.Protons[i].Row(1))
		assert.Equal(t, 2.0, bands.Electrons[i].At(0, 0))
		assert.Equal(t, 12.0, bands.Electrons[i].At(0, 10))
	}
	assert.Equal(t, "telescope_1_proton", bands.Protons[1].Name())
}

func TestSplitTelescopeBandsInvalid(t *testing.T) {
	tel := telescope(t, "telescope_0", 1)
	tests := []struct {
		name string
		cfg  BandConfig
	}{
		{"overlap", BandConfig{Proton: Range{10, 20}, Electron: Range{2, 13}}},
		{"beyond width", BandConfig{Proton: Range{38, 42}, Electron: Range{2, 13}}},
		{"empty range", BandConfig{Proton: Range{17, 17}, Electron: Range{2, 13}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitTelescopeBands(tel, tel, tel, tt.cfg)
			assert.ErrorIs(t, err, telemetry.ErrShapeMismatch)
		})
	}
}

func TestRelativeTimeAndSpan(t *testing.T) {
	ts := []float64{1577836800, 1577836801.5, 1577838000}
	assert.Equal(t, []float64{0, 1.5, 1200}, RelativeTime(ts))
	assert.Empty(t, RelativeTime(nil))

	start, end, ok := Span(ts)
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 20*time.Minute, end.Sub(start))

	_, _, ok = Span(nil)
	assert.False(t, ok)
}
