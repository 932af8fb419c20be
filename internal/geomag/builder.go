package geomag

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Builder computes geomagnetic grids with a fixed number of goroutines.
type Builder struct {
	transform Transform
	workers   int
	logger    *slog.Logger
}

// NewBuilder creates a builder. workers below 1 means a single worker.
func NewBuilder(t Transform, workers int, logger *slog.Logger) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{transform: t, workers: workers, logger: logger}
}

// Workers returns the configured pool size.
func (b *Builder) Workers() int { return b.workers }

// Build fills a grid at altitudeM for instant ref. Any failed or non-finite
// cell aborts the build with a *GridComputationError and no grid.
func (b *Builder) Build(ctx context.Context, altitudeM float64, ref time.Time) (*Grid, error) {
	start := time.Now()
	grid := newGrid(altitudeM, ref)
	r := RadialDistance(altitudeM)

	if err := b.buildRows(ctx, grid, r); err != nil {
		return nil, fmt.Errorf("build geomagnetic grid: %w", err)
	}

	b.logger.Debug("geomagnetic grid built",
		"altitude_m", altitudeM,
		"epoch", ref.UTC().Format(time.RFC3339),
		"workers", b.workers,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return grid, nil
}

// buildRows feeds latitude rows to the workers. Each row writes only its own
// slice of the grid, so no locking is needed.
func (b *Builder) buildRows(ctx context.Context, grid *Grid, r float64) error {
	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan int, b.workers*2)

	g.Go(func() error {
		defer close(rows)
		for i := 0; i < GridRows; i++ {
			select {
			case rows <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < b.workers; w++ {
		g.Go(func() error {
			for row := range rows {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := b.fillRow(grid, row, r); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (b *Builder) fillRow(grid *Grid, row int, r float64) error {
	if bt, ok := b.transform.(BatchTransform); ok {
		return b.fillRowBatch(bt, grid, row, r)
	}
	lat := GeoLatitude(row)
	for col := 0; col < GridCols; col++ {
		p := Spherical{R: r, Lat: lat, Lon: GeoLongitude(col)}
		m, err := b.transform.Convert(p, grid.Time, FrameGEO, FrameMAG)
		if err != nil {
			return cellError(row, col, err)
		}
		if !finite(m.Lat) {
			return cellError(row, col, ErrNonFinite)
		}
		grid.values[row*GridCols+col] = m.Lat
	}
	return nil
}

// fillRowBatch converts a whole latitude row in one call.
func (b *Builder) fillRowBatch(bt BatchTransform, grid *Grid, row int, r float64) error {
	ps := make([]Spherical, GridCols)
	for col := range ps {
		ps[col] = Spherical{R: r, Lat: GeoLatitude(row), Lon: GeoLongitude(col)}
	}
	out := grid.values[row*GridCols : (row+1)*GridCols]
	ms := make([]Spherical, GridCols)
	if err := bt.ConvertBatch(ps, grid.Time, FrameGEO, FrameMAG, ms); err != nil {
		return cellError(row, -1, err)
	}
	for col, m := range ms {
		if !finite(m.Lat) {
			return cellError(row, col, ErrNonFinite)
		}
		out[col] = m.Lat
	}
	return nil
}
