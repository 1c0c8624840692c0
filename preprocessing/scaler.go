// Package preprocessing provides feature scaling utilities for pipelines
// that feed the conformal regressor. Scaling the design matrix does not
// change interval validity, but it conditions the least-squares solve.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/LacombeLouis/MAPIE/core/model"
	"github.com/LacombeLouis/MAPIE/pkg/errors"
)

// StandardScaler centers each feature to zero mean and scales it to unit
// standard deviation. Constant features keep a scale of 1 to avoid division
// by zero.
type StandardScaler struct {
	state *model.StateManager

	withMean bool
	withStd  bool

	mean      []float64
	scale     []float64
	nFeatures int
}

// NewStandardScaler creates a StandardScaler that both centers and scales.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		withMean: true,
		withStd:  true,
	}
}

// Fit computes per-feature mean and standard deviation.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "StandardScaler.Fit")
	}

	s.nFeatures = c
	s.mean = make([]float64, c)
	s.scale = make([]float64, c)

	for j := 0; j < c; j++ {
		if s.withMean {
			var sum float64
			for i := 0; i < r; i++ {
				sum += X.At(i, j)
			}
			s.mean[j] = sum / float64(r)
		}

		s.scale[j] = 1
		if s.withStd {
			var sumSquares float64
			for i := 0; i < r; i++ {
				diff := X.At(i, j) - s.mean[j]
				sumSquares += diff * diff
			}
			std := math.Sqrt(sumSquares / float64(r))
			if std > 1e-8 {
				s.scale[j] = std
			}
		}
	}

	s.state.SetFitted()
	s.state.SetDimensions(c, r)
	return nil
}

// Transform standardizes X with the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.mean[j])/s.scale[j])
		}
	}
	return result, nil
}

// FitTransform fits the scaler and transforms the same data.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.scale[j]+s.mean[j])
		}
	}
	return result, nil
}

// Mean returns a copy of the per-feature means.
func (s *StandardScaler) Mean() []float64 {
	cp := make([]float64, len(s.mean))
	copy(cp, s.mean)
	return cp
}

// Scale returns a copy of the per-feature standard deviations.
func (s *StandardScaler) Scale() []float64 {
	cp := make([]float64, len(s.scale))
	copy(cp, s.scale)
	return cp
}

// String returns the string representation of the scaler.
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return "StandardScaler()"
	}
	return fmt.Sprintf("StandardScaler(n_features=%d, fitted=true)", s.nFeatures)
}
