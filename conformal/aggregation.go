package conformal

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/LacombeLouis/MAPIE/pkg/errors"
)

// AggFunction selects how out-of-fold predictions are combined into one
// value per row.
type AggFunction string

const (
	// AggNone disables aggregation. Requesting an operation that needs
	// aggregation while AggNone is configured is a configuration error.
	AggNone AggFunction = ""

	// AggMean combines out-of-fold predictions by arithmetic mean.
	AggMean AggFunction = "mean"

	// AggMedian combines out-of-fold predictions by median.
	AggMedian AggFunction = "median"
)

// ParseAggFunction converts a string to an AggFunction, failing on
// unrecognized values.
func ParseAggFunction(s string) (AggFunction, error) {
	switch AggFunction(s) {
	case AggNone, AggMean, AggMedian:
		return AggFunction(s), nil
	default:
		return AggNone, errors.NewValidationError("agg_function", "value is not correct", s)
	}
}

// valid reports whether the aggregation function is one of the recognized
// values, including AggNone.
func (fn AggFunction) valid() bool {
	switch fn {
	case AggNone, AggMean, AggMedian:
		return true
	default:
		return false
	}
}

// AggregateAll combines each row of predictions into a single value using
// fn, skipping NaN entries. Requesting aggregation with AggNone is a
// configuration error.
func AggregateAll(fn AggFunction, predictions mat.Matrix) (*mat.VecDense, error) {
	if fn == AggNone {
		return nil, errors.NewValueError("AggregateAll", "aggregation function called but not defined")
	}
	if !fn.valid() {
		return nil, errors.NewValidationError("agg_function", "value is not correct", string(fn))
	}

	rows, cols := predictions.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "AggregateAll")
	}

	out := mat.NewVecDense(rows, nil)
	row := make([]float64, 0, cols)
	for i := 0; i < rows; i++ {
		row = row[:0]
		for j := 0; j < cols; j++ {
			v := predictions.At(i, j)
			if !math.IsNaN(v) {
				row = append(row, v)
			}
		}
		out.SetVec(i, aggregate(fn, row))
	}
	return out, nil
}

// aggregate reduces a NaN-free slice with fn. Empty input yields NaN: the
// caller decides whether a missing aggregate is a warning or an error.
func aggregate(fn AggFunction, values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	switch fn {
	case AggMedian:
		return median(values)
	default: // AggMean
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
}

// median mutates its argument's order.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
