// Package model defines the estimator contracts consumed by the conformal
// engine. Any point-prediction regressor satisfying Estimator can be
// wrapped: the engine only needs fit, predict, and independent cloning for
// per-fold isolation.
package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that can be trained on a dataset. y is a column vector
// (n×1 matrix).
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// WeightedFitter is a model that accepts per-sample weights during training.
// A nil weight slice means uniform weights.
type WeightedFitter interface {
	FitWeighted(X, y mat.Matrix, sampleWeight []float64) error
}

// Predictor produces point predictions, one per input row, as an n×1 matrix.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Cloner produces an independent, unfitted copy of the model carrying the
// same hyperparameters. Per-fold workers clone before fitting so no two
// workers ever share estimator state.
type Cloner interface {
	CloneEstimator() Estimator
}

// Estimator is the full capability contract the conformal engine consumes.
type Estimator interface {
	Fitter
	WeightedFitter
	Predictor
	Cloner
}

// Scorer is a model that can compute a goodness-of-fit score.
type Scorer interface {
	// Score returns the coefficient of determination R² of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces of a standalone regression model.
type Regressor interface {
	Estimator
	Scorer
}
