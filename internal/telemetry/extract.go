package telemetry

import (
	"fmt"

	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
)

// Extract slices every channel of l out of the two record blocks. The blocks
// must hold the same number of records and be at least as wide as the
// layout's furthest column. On error no channels are returned.
func Extract(l layout.Layout, block1, block2 Block) (Channels, error) {
	blocks := map[layout.Block]Block{layout.Block1: block1, layout.Block2: block2}
	for _, b := range []layout.Block{layout.Block1, layout.Block2} {
		blk := blocks[b]
		if blk.Rows < 1 || blk.Cols < 1 || len(blk.Data) != blk.Rows*blk.Cols {
			return nil, &ShapeMismatchError{
				Reason: fmt.Sprintf("%s is empty or malformed (%dx%d, %d values)", b, blk.Rows, blk.Cols, len(blk.Data)),
			}
		}
	}
	if block1.Rows != block2.Rows {
		return nil, &ShapeMismatchError{Reason: "block row counts differ", Want: block1.Rows, Got: block2.Rows}
	}

	out := make(Channels, len(l.Entries))
	for _, e := range l.Entries {
		blk, ok := blocks[e.Block]
		if !ok {
			return nil, &ShapeMismatchError{Channel: e.Name, Reason: fmt.Sprintf("unknown source %s", e.Block)}
		}
		if e.Start < 0 || e.End() > blk.Cols {
			return nil, &ShapeMismatchError{
				Channel: e.Name,
				Reason:  fmt.Sprintf("columns [%d,%d) exceed %s width", e.Start, e.End(), e.Block),
				Want:    e.End(),
				Got:     blk.Cols,
			}
		}
		data := make([]float64, 0, blk.Rows*e.Length)
		for i := 0; i < blk.Rows; i++ {
			row := blk.Data[i*blk.Cols : (i+1)*blk.Cols]
			data = append(data, row[e.Start:e.End()]...)
		}
		out[e.Name] = Channel{name: e.Name, width: e.Length, data: data}
	}
	return out, nil
}
