// Package telemetry turns raw record blocks into named physical channels.
package telemetry

import (
	"errors"
	"fmt"
)

// Block is a rectangular table of raw record values stored row-major.
type Block struct {
	Rows int
	Cols int
	Data []float64
}

// NewBlock wraps data as a rows×cols block.
func NewBlock(rows, cols int, data []float64) (Block, error) {
	if rows < 1 || cols < 1 {
		return Block{}, &ShapeMismatchError{Reason: fmt.Sprintf("block shape %dx%d is empty", rows, cols)}
	}
	if len(data) != rows*cols {
		return Block{}, &ShapeMismatchError{Reason: "block data length", Want: rows * cols, Got: len(data)}
	}
	return Block{Rows: rows, Cols: cols, Data: data}, nil
}

// At returns the value at row i, column j.
func (b Block) At(i, j int) float64 { return b.Data[i*b.Cols+j] }

// Channel is a named quantity extracted from every record. Width 1 means a
// scalar per record. Channels are immutable once built.
type Channel struct {
	name  string
	width int
	data  []float64
}

// NewChannel builds a channel from row-major data. An empty channel keeps its width.
func NewChannel(name string, width int, data []float64) (Channel, error) {
	if width < 1 {
		return Channel{}, &ShapeMismatchError{Channel: name, Reason: fmt.Sprintf("width %d < 1", width)}
	}
	if len(data)%width != 0 {
		return Channel{}, &ShapeMismatchError{Channel: name, Reason: "data not a multiple of width", Want: width, Got: len(data)}
	}
	return Channel{name: name, width: width, data: data}, nil
}

func (c Channel) Name() string { return c.name }

// Width is the number of columns per record.
func (c Channel) Width() int { return c.width }

// Len is the number of records.
func (c Channel) Len() int {
	if c.width == 0 {
		return 0
	}
	return len(c.data) / c.width
}

// At returns column j of record i.
func (c Channel) At(i, j int) float64 { return c.data[i*c.width+j] }

// Row returns a copy of record i.
func (c Channel) Row(i int) []float64 {
	out := make([]float64, c.width)
	copy(out, c.data[i*c.width:(i+1)*c.width])
	return out
}

// Column returns a copy of column j across all records.
func (c Channel) Column(j int) []float64 {
	n := c.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = c.data[i*c.width+j]
	}
	return out
}

// Scalars returns the first column, which is the whole channel when Width is 1.
func (c Channel) Scalars() []float64 { return c.Column(0) }

// Values returns a copy of the row-major data.
func (c Channel) Values() []float64 {
	out := make([]float64, len(c.data))
	copy(out, c.data)
	return out
}

// Slice returns a channel with columns [from, to) of every record.
func (c Channel) Slice(name string, from, to int) (Channel, error) {
	if from < 0 || to > c.width || from >= to {
		return Channel{}, &ShapeMismatchError{
			Channel: c.name,
			Reason:  fmt.Sprintf("column range [%d,%d) outside width", from, to),
			Want:    to,
			Got:     c.width,
		}
	}
	w := to - from
	n := c.Len()
	out := make([]float64, 0, n*w)
	for i := 0; i < n; i++ {
		out = append(out, c.data[i*c.width+from:i*c.width+to]...)
	}
	return Channel{name: name, width: w, data: out}, nil
}

// Channels maps channel names to their extracted values.
type Channels map[string]Channel

// ErrUnknownChannel is returned by Get for names the layout never declared.
var ErrUnknownChannel = errors.New("unknown channel")

// Get returns the named channel.
func (cs Channels) Get(name string) (Channel, error) {
	c, ok := cs[name]
	if !ok {
		return Channel{}, fmt.Errorf("%w: %s", ErrUnknownChannel, name)
	}
	return c, nil
}

// ErrShapeMismatch is matched by every *ShapeMismatchError.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeMismatchError reports data whose dimensions disagree with what an
// operation needs. Want and Got are zero when the reason says it all.
type ShapeMismatchError struct {
	Channel string
	Reason  string
	Want    int
	Got     int
}

func (e *ShapeMismatchError) Error() string {
	msg := "shape mismatch"
	if e.Channel != "" {
		msg += " in " + e.Channel
	}
	msg += ": " + e.Reason
	if e.Want != 0 || e.Got != 0 {
		msg += fmt.Sprintf(" (want %d, got %d)", e.Want, e.Got)
	}
	return msg
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }
