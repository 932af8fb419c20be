// Command quicklook renders the HEPD/MEPD quicklook figure of one orbit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/seonghohan1228/plot-satellite-v2/internal/geomag"
	"github.com/seonghohan1228/plot-satellite-v2/internal/h5store"
	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
	"github.com/seonghohan1228/plot-satellite-v2/internal/metrics"
	"github.com/seonghohan1228/plot-satellite-v2/internal/orbitfile"
	"github.com/seonghohan1228/plot-satellite-v2/internal/quicklook"
	"github.com/seonghohan1228/plot-satellite-v2/internal/render"
	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

const (
	exitOther         = 1
	exitConfiguration = 2
	exitShape         = 3
	exitGrid          = 4
	exitIO            = 5
)

var exitCodes = map[string]int{
	quicklook.KindConfiguration: exitConfiguration,
	quicklook.KindShape:         exitShape,
	quicklook.KindGrid:          exitGrid,
	quicklook.KindIO:            exitIO,
	quicklook.KindOther:         exitOther,
}

func main() {
	_ = godotenv.Load() // a missing .env is fine

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("QUICKLOOK_LOG_LEVEL")),
	}))

	opts := readCommandLineOptions(logger)

	if opts.List {
		if err := listFiles(opts.Data); err != nil {
			logger.Error("listing data directory", "dir", opts.Data, "error", err)
			os.Exit(exitIO)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	err := run(ctx, opts, logger)
	status := quicklook.Kind(err)
	metrics.RecordRun(status)
	if opts.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(opts.MetricsTextfile); werr != nil {
			logger.Warn("failed to write metrics textfile", "path", opts.MetricsTextfile, "error", werr)
		}
	}

	if err != nil {
		attrs := append([]any{"error", err, "error_kind", status, "orbit", opts.Orbit}, detail(err)...)
		logger.Error("quicklook failed", attrs...)
		os.Exit(exitCodes[status])
	}
}

func run(ctx context.Context, opts commandLineOptions, logger *slog.Logger) error {
	if opts.Orbit < 0 {
		return fmt.Errorf("%w: --orbit is required", orbitfile.ErrInvalidOrbit)
	}

	cfg, err := loadRunConfig(logger, opts)
	if err != nil {
		return err
	}
	renderOpts, err := loadRenderConfig(logger, opts)
	if err != nil {
		return &layout.ConfigurationError{Reason: err.Error()}
	}
	rd, err := render.New(renderOpts, logger)
	if err != nil {
		return &layout.ConfigurationError{Reason: err.Error()}
	}

	pair, err := orbitfile.Find(opts.Data, opts.Orbit)
	if err != nil {
		return err
	}
	logger.Info("orbit files found", "orbit", opts.Orbit, "hepd", pair.HEPD.Name, "mepd", pair.MEPD.Name)

	dipole := geomag.Dipole{Epoch: cfg.Epoch}
	builder := geomag.NewBuilder(dipole, loadGridWorkers(logger), logger)
	runner, err := quicklook.NewRunner(cfg, dipole, builder, logger)
	if err != nil {
		return err
	}

	res, err := runner.Run(ctx, opts.Orbit, h5store.Source{Pair: pair})
	if err != nil {
		return err
	}
	poleLat, poleLon := dipole.Pole(res.Start)
	logger.Info("geomagnetic dipole", "pole_lat", poleLat, "pole_lon", poleLon, "epoch", res.Grid.Time.Format(time.RFC3339))

	start := time.Now()
	paths, err := rd.Render(res)
	metrics.ObserveRender(time.Since(start))
	if err != nil {
		return fmt.Errorf("render orbit %s: %w", orbitfile.FormatOrbit(opts.Orbit), err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

// detail extracts the offending channel or cell for the failure log line.
func detail(err error) []any {
	var (
		shapeErr *telemetry.ShapeMismatchError
		gridErr  *geomag.GridComputationError
		cfgErr   *layout.ConfigurationError
	)
	switch {
	case errors.As(err, &shapeErr):
		return []any{"channel", shapeErr.Channel}
	case errors.As(err, &gridErr):
		return []any{"row", gridErr.Row, "col", gridErr.Col, "lat", gridErr.Lat, "lon", gridErr.Lon}
	case errors.As(err, &cfgErr):
		return []any{"instrument", cfgErr.Instrument, "channel", cfgErr.Channel}
	}
	return nil
}

func listFiles(dir string) error {
	files, err := orbitfile.List(dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Printf("%s\t%s\t%s\t%s\n", orbitfile.FormatOrbit(f.Orbit), f.Instrument, f.Group, f.Name)
	}
	return nil
}

func logLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func loadGridWorkers(logger *slog.Logger) int {
	workers := runtime.NumCPU()
	if v := os.Getenv("QUICKLOOK_GRID_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid QUICKLOOK_GRID_WORKERS value, using default", "value", v, "default", workers)
		} else {
			workers = n
		}
	}
	logger.Info("grid config", "workers", workers)
	return workers
}

func loadRunConfig(logger *slog.Logger, opts commandLineOptions) (quicklook.Config, error) {
	cfg := quicklook.DefaultConfig()

	if opts.HEPDLayout != "" {
		l, err := layout.LoadFile(opts.HEPDLayout)
		if err != nil {
			return cfg, err
		}
		cfg.HEPDLayout = l
	}
	if opts.MEPDLayout != "" {
		l, err := layout.LoadFile(opts.MEPDLayout)
		if err != nil {
			return cfg, err
		}
		cfg.MEPDLayout = l
	}

	if v := os.Getenv("QUICKLOOK_GEOMAG_EPOCH"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			logger.Warn("invalid QUICKLOOK_GEOMAG_EPOCH value, using first MEPD record", "value", v)
		} else {
			cfg.Epoch = t.UTC()
		}
	}

	if v := os.Getenv("QUICKLOOK_SUBUNIT_A"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn("invalid QUICKLOOK_SUBUNIT_A value, using default", "value", v, "default", cfg.SubunitTarget)
		} else {
			cfg.SubunitTarget = n
		}
	}

	epoch := "first_record"
	if !cfg.Epoch.IsZero() {
		epoch = cfg.Epoch.Format(time.RFC3339)
	}
	logger.Info("run config",
		"hepd_layout", layoutSource(opts.HEPDLayout),
		"mepd_layout", layoutSource(opts.MEPDLayout),
		"subunit_a", cfg.SubunitTarget,
		"geomag_epoch", epoch,
	)
	return cfg, nil
}

func layoutSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

func loadRenderConfig(logger *slog.Logger, opts commandLineOptions) (render.Options, error) {
	cfg := render.DefaultOptions()
	cfg.Dir = opts.Out

	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return cfg, err
	}
	cfg.Format = format
	pole, err := render.ParsePole(opts.Pole)
	if err != nil {
		return cfg, err
	}
	cfg.Pole = pole

	if v := os.Getenv("QUICKLOOK_RENDER_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 200 {
			logger.Warn("invalid QUICKLOOK_RENDER_WIDTH value, using default", "value", v, "default", cfg.Width)
		} else {
			cfg.Width = n
		}
	}

	if v := os.Getenv("QUICKLOOK_RENDER_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 150 {
			logger.Warn("invalid QUICKLOOK_RENDER_HEIGHT value, using default", "value", v, "default", cfg.Height)
		} else {
			cfg.Height = n
		}
	}

	logger.Info("render config",
		"dir", cfg.Dir,
		"format", cfg.Format,
		"pole", opts.Pole,
		"width", cfg.Width,
		"height", cfg.Height,
	)
	return cfg, nil
}
