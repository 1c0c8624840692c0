package errors

import (
	"math"
	"strconv"
)

// CheckFinite returns a ValueError if values contain NaN or Inf. The engine
// uses it to guarantee that missing conformity scores never propagate
// silently into final interval bounds.
func CheckFinite(operation string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(operation,
				"non-finite value in output at index "+strconv.Itoa(i))
		}
	}
	return nil
}

// CheckFiniteMatrix checks every element of a matrix-like value.
func CheckFiniteMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewValueError(operation, "non-finite value in output")
			}
		}
	}
	return nil
}
