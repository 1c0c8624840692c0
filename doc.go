// Package mapie provides conformal prediction intervals for time-series
// regression in Go.
//
// The library wraps any point-prediction estimator and turns its outputs
// into calibrated intervals with a guaranteed miscoverage level, using
// jackknife, cross-validation, and block-bootstrap resampling strategies.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/LacombeLouis/MAPIE/conformal"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{2.1, 3.9, 6.2, 7.8})
//
//	    m := conformal.NewTimeSeriesRegressor(
//	        conformal.WithMethod(conformal.MethodPlus),
//	        conformal.WithCV(conformal.LeaveOneOut{}),
//	    )
//	    if err := m.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    XTest := mat.NewDense(2, 1, []float64{5, 6})
//	    point, intervals, err := m.Predict(XTest, conformal.WithAlpha(0.1))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for i := 0; i < 2; i++ {
//	        fmt.Printf("%.2f in [%.2f, %.2f]\n",
//	            point.AtVec(i), intervals.Lower(i, 0), intervals.Upper(i, 0))
//	    }
//	}
//
// # Packages
//
//   - conformal: the interval engine, resampling plans, and aggregation
//   - linear: the default least-squares point estimator
//   - metrics: coverage and interval-width scores
//   - preprocessing: feature scaling
//   - core/model: estimator contracts and fitted-state tracking
//   - core/parallel: deterministic worker pools for per-fold fits
//   - pkg/errors: typed errors and the warning facility
//   - pkg/log: structured logging interface with zerolog and slog backends
package mapie
