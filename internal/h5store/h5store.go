// Package h5store reads instrument record blocks from HDF5 telemetry files.
package h5store

import (
	"context"
	"fmt"

	"gonum.org/v1/hdf5"

	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
	"github.com/seonghohan1228/plot-satellite-v2/internal/orbitfile"
	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

// Dataset names inside each instrument group.
const (
	Block1Dataset = "block1_values"
	Block2Dataset = "block2_values"
)

// DatasetPath returns the absolute dataset path of a block inside group.
func DatasetPath(group, dataset string) string {
	return "/" + group + "/" + dataset
}

// ReadBlocks loads both record blocks of group from the file at path.
func ReadBlocks(path, group string) (block1, block2 telemetry.Block, err error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return block1, block2, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if block1, err = readBlock(f, DatasetPath(group, Block1Dataset)); err != nil {
		return block1, block2, fmt.Errorf("%s: %w", path, err)
	}
	if block2, err = readBlock(f, DatasetPath(group, Block2Dataset)); err != nil {
		return block1, block2, fmt.Errorf("%s: %w", path, err)
	}
	return block1, block2, nil
}

func readBlock(f *hdf5.File, name string) (telemetry.Block, error) {
	ds, err := f.OpenDataset(name)
	if err != nil {
		return telemetry.Block{}, fmt.Errorf("open dataset %s: %w", name, err)
	}
	defer ds.Close()

	rows, cols, err := shape(ds)
	if err != nil {
		return telemetry.Block{}, fmt.Errorf("dataset %s: %w", name, err)
	}
	data := make([]float64, rows*cols)
	if err := ds.Read(&data); err != nil {
		return telemetry.Block{}, fmt.Errorf("read dataset %s: %w", name, err)
	}
	return telemetry.NewBlock(rows, cols, data)
}

func shape(ds *hdf5.Dataset) (rows, cols int, err error) {
	space := ds.Space()
	defer space.Close()

	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return 0, 0, err
	}
	if len(dims) != 2 {
		return 0, 0, &telemetry.ShapeMismatchError{Reason: "dataset is not two-dimensional", Want: 2, Got: len(dims)}
	}
	return int(dims[0]), int(dims[1]), nil
}

// DatasetInfo describes one block dataset without loading it.
type DatasetInfo struct {
	Path string
	Rows int
	Cols int
}

// Inspect returns the shapes of both block datasets of group.
func Inspect(path, group string) ([]DatasetInfo, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var infos []DatasetInfo
	for _, name := range []string{Block1Dataset, Block2Dataset} {
		p := DatasetPath(group, name)
		ds, err := f.OpenDataset(p)
		if err != nil {
			return nil, fmt.Errorf("open dataset %s: %w", p, err)
		}
		rows, cols, err := shape(ds)
		ds.Close()
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", p, err)
		}
		infos = append(infos, DatasetInfo{Path: p, Rows: rows, Cols: cols})
	}
	return infos, nil
}

// Source serves the record blocks of one orbit's file pair.
type Source struct {
	Pair orbitfile.Pair
}

func (s Source) Blocks(ctx context.Context, inst layout.Instrument) (telemetry.Block, telemetry.Block, error) {
	if err := ctx.Err(); err != nil {
		return telemetry.Block{}, telemetry.Block{}, err
	}
	f, ok := s.Pair.Get(inst)
	if !ok {
		return telemetry.Block{}, telemetry.Block{}, fmt.Errorf("%w: no %s file", orbitfile.ErrNoMatch, inst)
	}
	return ReadBlocks(f.Path, f.Group)
}
