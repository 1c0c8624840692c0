// Package linear provides an ordinary-least-squares regressor with optional
// per-sample weights. It is the default point estimator for the conformal
// engine and satisfies the model.Estimator contract.
package linear

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/LacombeLouis/MAPIE/core/model"
	"github.com/LacombeLouis/MAPIE/pkg/errors"
)

// LinearRegression is a least-squares linear model solved by QR
// factorization.
type LinearRegression struct {
	state *model.StateManager

	fitIntercept bool

	coef_      []float64
	intercept_ float64
	nFeatures_ int
}

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithFitIntercept controls whether an intercept term is learned.
// Default true.
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// NewLinearRegression creates a new LinearRegression model.
func NewLinearRegression(options ...Option) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
	}
	for _, opt := range options {
		opt(lr)
	}
	return lr
}

// Fit trains the model on X and the column vector y.
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	return lr.FitWeighted(X, y, nil)
}

// FitWeighted trains the model with per-sample weights. A nil slice means
// uniform weights. Rows are scaled by the square root of their weight, so
// constant weights of any positive magnitude give the identical solution.
func (lr *LinearRegression) FitWeighted(X, y mat.Matrix, sampleWeight []float64) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LinearRegression.Fit")
	}
	if rows != yRows {
		return errors.NewDimensionError("LinearRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("LinearRegression.Fit", 1, yCols, 1)
	}
	if sampleWeight != nil {
		if len(sampleWeight) != rows {
			return errors.NewDimensionError("LinearRegression.Fit", rows, len(sampleWeight), 0)
		}
		for _, w := range sampleWeight {
			if w < 0 || math.IsNaN(w) {
				return errors.NewValueError("LinearRegression.Fit", "sample weights must be non-negative")
			}
		}
	}

	nCoef := cols
	if lr.fitIntercept {
		nCoef++
	}

	// Design matrix with an optional leading column of ones, rows scaled
	// by sqrt(weight).
	design := mat.NewDense(rows, nCoef, nil)
	target := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		scale := 1.0
		if sampleWeight != nil {
			scale = math.Sqrt(sampleWeight[i])
		}
		j0 := 0
		if lr.fitIntercept {
			design.Set(i, 0, scale)
			j0 = 1
		}
		for j := 0; j < cols; j++ {
			design.Set(i, j0+j, scale*X.At(i, j))
		}
		target.Set(i, 0, scale*y.At(i, 0))
	}

	var qr mat.QR
	qr.Factorize(design)

	coefficients := mat.NewDense(nCoef, 1, nil)
	if err := qr.SolveTo(coefficients, false, target); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "LinearRegression.Fit")
	}

	lr.coef_ = make([]float64, cols)
	if lr.fitIntercept {
		lr.intercept_ = coefficients.At(0, 0)
		for j := 0; j < cols; j++ {
			lr.coef_[j] = coefficients.At(j+1, 0)
		}
	} else {
		lr.intercept_ = 0
		for j := 0; j < cols; j++ {
			lr.coef_[j] = coefficients.At(j, 0)
		}
	}

	lr.nFeatures_ = cols
	lr.state.SetFitted()
	lr.state.SetDimensions(cols, rows)
	return nil
}

// Predict returns point predictions as an n×1 matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.state.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	if cols != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures_, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := lr.intercept_
		for j := 0; j < cols; j++ {
			pred += X.At(i, j) * lr.coef_[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// Score returns the coefficient of determination R².
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	var yMean float64
	for i := 0; i < rows; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(rows)

	var ssTot, ssRes float64
	for i := 0; i < rows; i++ {
		yi := y.At(i, 0)
		predi := predictions.At(i, 0)
		ssTot += (yi - yMean) * (yi - yMean)
		ssRes += (yi - predi) * (yi - predi)
	}

	if ssTot == 0 {
		return 0, errors.NewValueError("LinearRegression.Score", "cannot compute score with zero variance in y")
	}
	return 1.0 - ssRes/ssTot, nil
}

// CloneEstimator returns an independent, unfitted copy carrying the same
// hyperparameters.
func (lr *LinearRegression) CloneEstimator() model.Estimator {
	return NewLinearRegression(WithFitIntercept(lr.fitIntercept))
}

// Coef returns a copy of the learned coefficients.
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef_ == nil {
		return nil
	}
	coef := make([]float64, len(lr.coef_))
	copy(coef, lr.coef_)
	return coef
}

// Intercept returns the learned intercept.
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept_
}

// IsFitted reports whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// String returns the string representation of the model.
func (lr *LinearRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t)", lr.fitIntercept)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d, fitted=true)",
		lr.fitIntercept, lr.nFeatures_)
}
