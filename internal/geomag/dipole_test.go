package geomag

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDipolePole(t *testing.T) {
	lat, lon := Dipole{}.Pole(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 80.6, lat, 0.3)
	assert.InDelta(t, -72.7, lon, 0.5)

	// The pole drifts north between epochs.
	lat2025, _ := Dipole{}.Pole(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Greater(t, lat2025, lat)
}

func TestDipoleEpochPin(t *testing.T) {
	pinned := Dipole{Epoch: time.Date(2019, 7, 17, 17, 51, 15, 0, time.UTC)}
	a, _ := pinned.Pole(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	b, _ := pinned.Pole(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, a, b)
}

func TestDipoleGeographicPole(t *testing.T) {
	d := Dipole{}
	tm := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	poleLat, _ := d.Pole(tm)

	m, err := d.Convert(Spherical{R: 1, Lat: 90, Lon: 0}, tm, FrameGEO, FrameMAG)
	require.NoError(t, err)
	assert.InDelta(t, poleLat, m.Lat, 1e-9)
	assert.InDelta(t, 1.0, m.R, 1e-12)
}

func TestDipoleRoundTrip(t *testing.T) {
	d := Dipole{}
	tm := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, p := range []Spherical{
		{R: 1.08, Lat: 37.5, Lon: 127},
		{R: 1.0, Lat: -60, Lon: -45},
		{R: 2.5, Lat: 0, Lon: 179},
	} {
		m, err := d.Convert(p, tm, FrameGEO, FrameMAG)
		require.NoError(t, err)
		back, err := d.Convert(m, tm, FrameMAG, FrameGEO)
		require.NoError(t, err)
		assert.InDelta(t, p.R, back.R, 1e-12)
		assert.InDelta(t, p.Lat, back.Lat, 1e-9)
		assert.InDelta(t, p.Lon, back.Lon, 1e-9)
	}
}

func TestDipoleRejects(t *testing.T) {
	d := Dipole{}
	tm := time.Now()
	_, err := d.Convert(Spherical{R: 1}, tm, FrameGEO, "GSM")
	assert.ErrorIs(t, err, ErrUnsupportedFrame)

	for _, p := range []Spherical{
		{R: 0},
		{R: -1},
		{R: math.Inf(1)},
		{R: 1, Lat: math.NaN()},
		{R: 1, Lat: 91},
	} {
		_, err := d.Convert(p, tm, FrameGEO, FrameMAG)
		assert.ErrorIs(t, err, ErrInvalidPosition, "%+v", p)
	}
}

func TestDipoleGrid(t *testing.T) {
	g, err := NewBuilder(Dipole{}, 4, testLogger()).Build(context.Background(), 550e3, time.Date(2020, 7, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Geomagnetic latitude is bounded and the equator tilts by the dipole angle.
	for col := 0; col < GridCols; col += 30 {
		for row := 0; row < GridRows; row += 10 {
			require.LessOrEqual(t, math.Abs(g.At(row, col)), 90.0)
		}
		assert.LessOrEqual(t, math.Abs(g.At(90, col)), 10.0)
	}

	pt := ExtractParallels(g, DefaultParallels)
	for col := 0; col < GridCols; col++ {
		for i := 1; i < len(DefaultParallels); i++ {
			require.Less(t, pt.Latitudes[i-1][col], pt.Latitudes[i][col])
		}
	}
}
