package conformal

import (
	"math"
	"sort"
)

// quantileInterp selects the index rounding rule for empirical quantiles,
// matching numpy's "lower" and "higher" interpolation.
type quantileInterp int

const (
	interpLower quantileInterp = iota
	interpHigher
)

// nanQuantile returns the empirical q-quantile of values, skipping NaN
// entries. Returns NaN when no finite value remains. q is clipped to [0, 1].
func nanQuantile(values []float64, q float64, interp quantileInterp) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)

	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	pos := q * float64(len(clean)-1)
	var idx int
	switch interp {
	case interpHigher:
		idx = int(math.Ceil(pos))
	default:
		idx = int(math.Floor(pos))
	}
	return clean[idx]
}
