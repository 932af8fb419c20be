// Package subunit splits interleaved MEPD records into their two subunits.
package subunit

import (
	"fmt"
	"math"

	"github.com/seonghohan1228/plot-satellite-v2/internal/telemetry"
)

// DefaultTarget is the identifier written by subunit A.
const DefaultTarget = 3

// IDs reads the per-record subunit identifiers from a scalar channel. Values
// are rounded to the nearest integer. A NaN or infinite id is a shape mismatch.
func IDs(ch telemetry.Channel) ([]int, error) {
	if ch.Width() != 1 {
		return nil, &telemetry.ShapeMismatchError{Channel: ch.Name(), Reason: "subunit id must be scalar", Want: 1, Got: ch.Width()}
	}
	vals := ch.Scalars()
	ids := make([]int, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &telemetry.ShapeMismatchError{Channel: ch.Name(), Reason: fmt.Sprintf("record %d has non-finite id %v", i, v)}
		}
		ids[i] = int(math.Round(v))
	}
	return ids, nil
}

// Partition splits ch into the records whose id equals target and all the
// rest. Both halves keep record order and the channel width.
// A subunit with no records yields an empty channel, not an error.
func Partition(ch telemetry.Channel, ids []int, target int) (a, b telemetry.Channel, err error) {
	if len(ids) != ch.Len() {
		return a, b, &telemetry.ShapeMismatchError{
			Channel: ch.Name(),
			Reason:  "subunit ids do not cover every record",
			Want:    ch.Len(),
			Got:     len(ids),
		}
	}
	w := ch.Width()
	vals := ch.Values()
	var inA, inB []float64
	for i, id := range ids {
		row := vals[i*w : (i+1)*w]
		if id == target {
			inA = append(inA, row...)
		} else {
			inB = append(inB, row...)
		}
	}
	if a, err = telemetry.NewChannel(ch.Name(), w, inA); err != nil {
		return a, b, err
	}
	b, err = telemetry.NewChannel(ch.Name(), w, inB)
	return a, b, err
}

// PartitionSlice applies the same rule as Partition to a plain slice.
func PartitionSlice[T any](xs []T, ids []int, target int) (a, b []T, err error) {
	if len(ids) != len(xs) {
		return nil, nil, &telemetry.ShapeMismatchError{
			Reason: "subunit ids do not cover every record",
			Want:   len(xs),
			Got:    len(ids),
		}
	}
	a, b = []T{}, []T{}
	for i, id := range ids {
		if id == target {
			a = append(a, xs[i])
		} else {
			b = append(b, xs[i])
		}
	}
	return a, b, nil
}
