package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seonghohan1228/plot-satellite-v2/internal/layout"
)

// seqBlock fills a block so that At(i, j) == base + i*100 + j.
func seqBlock(t *testing.T, rows, cols int, base float64) Block {
	t.Helper()
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = base + float64(i*100+j)
		}
	}
	b, err := NewBlock(rows, cols, data)
	require.NoError(t, err)
	return b
}

func TestExtractCompleteness(t *testing.T) {
	for _, l := range []layout.Layout{layout.HEPDLayout(), layout.MEPDLayout()} {
		t.Run(string(l.Instrument), func(t *testing.T) {
			b1 := seqBlock(t, 5, l.Block1Width, 0)
			b2 := seqBlock(t, 5, l.Block2Width, 10000)

			chs, err := Extract(l, b1, b2)
			require.NoError(t, err)
			require.Len(t, chs, len(l.Entries))

			for _, e := range l.Entries {
				ch, err := chs.Get(e.Name)
				require.NoError(t, err, e.Name)
				assert.Equal(t, 5, ch.Len(), e.Name)
				assert.Equal(t, e.Length, ch.Width(), e.Name)
			}
		})
	}
}

func TestExtractColumnOrder(t *testing.T) {
	l := layout.MEPDLayout()
	b1 := seqBlock(t, 3, l.Block1Width, 0)
	b2 := seqBlock(t, 3, l.Block2Width, 10000)

	chs, err := Extract(l, b1, b2)
	require.NoError(t, err)

	tm := chs[layout.Time]
	assert.Equal(t, []float64{10, 110, 210}, tm.Scalars())

	det := chs[layout.Detector(1)]
	row := det.Row(2)
	require.Len(t, row, 64)
	assert.Equal(t, 281.0, row[0])
	assert.Equal(t, 344.0, row[63])

	pos := chs[layout.Position]
	assert.Equal(t, []float64{10016, 10017, 10018}, pos.Row(0))
}

func TestExtractAcceptsWiderBlocks(t *testing.T) {
	l := layout.HEPDLayout()
	chs, err := Extract(l, seqBlock(t, 2, l.Block1Width+7, 0), seqBlock(t, 2, 40, 0))
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 107}, chs[layout.Time].Scalars())
}

func TestExtractShapeMismatch(t *testing.T) {
	l := layout.HEPDLayout()
	tests := []struct {
		name    string
		b1, b2  Block
		channel string
	}{
		{"row counts differ", seqBlock(t, 4, 131, 0), seqBlock(t, 3, 19, 0), ""},
		{"block1 too narrow", seqBlock(t, 2, 100, 0), seqBlock(t, 2, 19, 0), layout.Telescope(2)},
		{"block2 too narrow", seqBlock(t, 2, 131, 0), seqBlock(t, 2, 18, 0), layout.Position},
		{"empty block", Block{}, seqBlock(t, 2, 19, 0), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chs, err := Extract(l, tt.b1, tt.b2)
			require.Error(t, err)
			assert.Nil(t, chs)
			assert.True(t, errors.Is(err, ErrShapeMismatch))

			var sm *ShapeMismatchError
			require.True(t, errors.As(err, &sm))
			assert.Equal(t, tt.channel, sm.Channel)
		})
	}
}

func TestExtractIsPure(t *testing.T) {
	l := layout.HEPDLayout()
	b1 := seqBlock(t, 2, l.Block1Width, 0)
	b2 := seqBlock(t, 2, l.Block2Width, 0)

	chs, err := Extract(l, b1, b2)
	require.NoError(t, err)
	b1.Data[7] = -1

	assert.Equal(t, 7.0, chs[layout.Time].At(0, 0), "channel must not alias the block")
}

func TestNewBlock(t *testing.T) {
	_, err := NewBlock(2, 3, make([]float64, 5))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewBlock(0, 3, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	b, err := NewBlock(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 3.0, b.At(1, 0))
}

func TestChannelAccessors(t *testing.T) {
	ch, err := NewChannel("spectrum", 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	assert.Equal(t, 2, ch.Len())
	assert.Equal(t, []float64{2, 5}, ch.Column(1))

	row := ch.Row(0)
	row[0] = 99
	assert.Equal(t, 1.0, ch.At(0, 0), "Row returns a copy")

	sub, err := ch.Slice("mid", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 5, 6}, sub.Values())

	_, err = ch.Slice("bad", 2, 5)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewChannel("odd", 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Channels{}.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownChannel)
}
