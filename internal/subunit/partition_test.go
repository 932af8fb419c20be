package subunit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

func mustChannel(t *testing.T, name string, width int, data []float64) telemetry.Channel {
	t.Helper()
	ch, err := telemetry.NewChannel(name, width, data)
	require.NoError(t, err)
	return ch
}

func TestPartitionInterleaved(t *testing.T) {
	ch := mustChannel(t, "time", 1, []float64{10, 11, 12})

	a, b, err := Partition(ch, []int{3, 5, 3}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 12}, a.Scalars())
	assert.Equal(t, []float64{11}, b.Scalars())
}

func TestPartitionAbsentSubunit(t *testing.T) {
	ch := mustChannel(t, "detector_0", 2, []float64{1, 2, 3, 4, 5, 6})

	a, b, err := Partition(ch, []int{5, 5, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 2, a.Width())
	assert.Equal(t, ch.Values(), b.Values())
}

func TestPartitionRows(t *testing.T) {
	ch := mustChannel(t, "spectrum", 3, []float64{
		1, 1, 1,
		2, 2, 2,
		3, 3, 3,
		4, 4, 4,
	})
	a, b, err := Partition(ch, []int{5, 3, 3, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2, 3, 3, 3}, a.Values())
	assert.Equal(t, []float64{1, 1, 1, 4, 4, 4}, b.Values())
}

func TestPartitionLengthMismatch(t *testing.T) {
	ch := mustChannel(t, "time", 1, []float64{1, 2, 3})
	_, _, err := Partition(ch, []int{3, 5}, 3)
	assert.ErrorIs(t, err, telemetry.ErrShapeMismatch)

	_, _, err = PartitionSlice([]float64{1}, []int{3, 3}, 3)
	assert.ErrorIs(t, err, telemetry.ErrShapeMismatch)
}

// Every record lands in exactly one half and order is kept.
func TestPartitionConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		size := rng.Intn(40) + 1
		xs := make([]float64, size)
		ids := make([]int, size)
		for i := range xs {
			xs[i] = float64(i)
			ids[i] = 3 + 2*rng.Intn(2)
		}
		a, b, err := PartitionSlice(xs, ids, 3)
		require.NoError(t, err)
		require.Equal(t, size, len(a)+len(b))

		var ia, ib int
		for i, id := range ids {
			if id == 3 {
				require.Equal(t, xs[i], a[ia])
				ia++
			} else {
				require.Equal(t, xs[i], b[ib])
				ib++
			}
		}
	}
}

func TestIDs(t *testing.T) {
	ids, err := IDs(mustChannel(t, "subunit_id", 1, []float64{3, 5.0000001, 2.9999}))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5, 3}, ids)

	_, err = IDs(mustChannel(t, "wide", 2, []float64{3, 5}))
	assert.ErrorIs(t, err, telemetry.ErrShapeMismatch)
}

func TestIDsRejectNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := IDs(mustChannel(t, "subunit_id", 1, []float64{3, bad, 5}))
		assert.ErrorIs(t, err, telemetry.ErrShapeMismatch, "%v", bad)
		assert.Contains(t, err.Error(), "record 1")
	}
}
