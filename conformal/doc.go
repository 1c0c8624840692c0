// Package conformal implements conformal prediction intervals for
// time-series regression.
//
// TimeSeriesRegressor wraps any point-prediction estimator (anything
// satisfying model.Estimator) and produces calibrated prediction intervals
// using jackknife, jackknife+, CV+, minmax, or block-bootstrap resampling.
// Conformity scores are absolute residuals between observed targets and
// out-of-fold predictions; PartialFit refreshes them online as new
// observations arrive, without refitting the base estimator.
//
// Basic usage:
//
//	reg := conformal.NewTimeSeriesRegressor(
//	    conformal.WithMethod(conformal.MethodPlus),
//	    conformal.WithCV(&conformal.BlockBootstrap{NResamplings: 30, NBlocks: 5, Seed: 1}),
//	)
//	if err := reg.Fit(X, y); err != nil { ... }
//	yPred, intervals, err := reg.Predict(XTest, conformal.WithAlpha(0.05, 0.1))
package conformal
