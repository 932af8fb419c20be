package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seonghohan1228/plot-satellite-v2/internal/geomag"
	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
	"github.com/seonghohan1228/plot-satellite-v2/internal/quicklook"
	"github.com/seonghohan1228/plot-satellite-v2/internal/render"
	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, logLevel(tt.in), tt.in)
	}
}

func TestLoadGridWorkers(t *testing.T) {
	t.Setenv("QUICKLOOK_GRID_WORKERS", "3")
	assert.Equal(t, 3, loadGridWorkers(testLogger()))

	t.Setenv("QUICKLOOK_GRID_WORKERS", "zero")
	assert.Equal(t, runtime.NumCPU(), loadGridWorkers(testLogger()))
}

func TestLoadRunConfig(t *testing.T) {
	t.Setenv("QUICKLOOK_GEOMAG_EPOCH", "2019-07-17T17:51:15Z")
	t.Setenv("QUICKLOOK_SUBUNIT_A", "5")
	cfg, err := loadRunConfig(testLogger(), commandLineOptions{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 7, 17, 17, 51, 15, 0, time.UTC), cfg.Epoch)
	assert.Equal(t, 5, cfg.SubunitTarget)

	t.Setenv("QUICKLOOK_GEOMAG_EPOCH", "yesterday")
	t.Setenv("QUICKLOOK_SUBUNIT_A", "a")
	cfg, err = loadRunConfig(testLogger(), commandLineOptions{})
	require.NoError(t, err)
	assert.True(t, cfg.Epoch.IsZero())
	assert.Equal(t, 3, cfg.SubunitTarget)

	_, err = loadRunConfig(testLogger(), commandLineOptions{MEPDLayout: "does-not-exist.toml"})
	assert.Error(t, err)
}

func TestLoadRenderConfig(t *testing.T) {
	t.Setenv("QUICKLOOK_RENDER_WIDTH", "640")
	t.Setenv("QUICKLOOK_RENDER_HEIGHT", "10")
	cfg, err := loadRenderConfig(testLogger(), commandLineOptions{Out: "out", Format: "svg", Pole: "north"})
	require.NoError(t, err)
	assert.Equal(t, render.SVG, cfg.Format)
	assert.Equal(t, render.NorthPole, cfg.Pole)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, render.DefaultOptions().Height, cfg.Height)
	assert.Equal(t, "out", cfg.Dir)

	_, err = loadRenderConfig(testLogger(), commandLineOptions{Format: "pdf", Pole: "south"})
	assert.Error(t, err)
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&layout.ConfigurationError{Reason: "bad"}, exitConfiguration},
		{fmt.Errorf("extract: %w", &telemetry.ShapeMismatchError{Channel: "time"}), exitShape},
		{&geomag.GridComputationError{Err: errors.New("x")}, exitGrid},
		{errors.New("x"), exitOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCodes[quicklook.Kind(tt.err)], "%v", tt.err)
	}
}

func TestDetail(t *testing.T) {
	err := fmt.Errorf("MEPD: %w", &telemetry.ShapeMismatchError{Channel: "subunit_id"})
	assert.Equal(t, []any{"channel", "subunit_id"}, detail(err))
	assert.Nil(t, detail(errors.New("plain")))
}
