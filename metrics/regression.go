// Package metrics provides evaluation utilities for regression models and
// prediction intervals. All functions are pure: equal-length vector inputs,
// scalar outputs, no hidden state.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/LacombeLouis/MAPIE/pkg/errors"
)

// RegressionCoverageScore returns the fraction of yTrue values falling
// inside [yLow, yUp], the empirical coverage of a set of prediction
// intervals.
func RegressionCoverageScore(yTrue, yLow, yUp *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("RegressionCoverageScore", "empty vector")
	}
	if yLow.Len() != n {
		return 0, errors.NewDimensionError("RegressionCoverageScore", n, yLow.Len(), 0)
	}
	if yUp.Len() != n {
		return 0, errors.NewDimensionError("RegressionCoverageScore", n, yUp.Len(), 0)
	}

	covered := 0
	for i := 0; i < n; i++ {
		v := yTrue.AtVec(i)
		if v >= yLow.AtVec(i) && v <= yUp.AtVec(i) {
			covered++
		}
	}
	return float64(covered) / float64(n), nil
}

// MeanIntervalWidth returns the mean of (yUp - yLow) over all rows.
func MeanIntervalWidth(yLow, yUp *mat.VecDense) (float64, error) {
	n := yLow.Len()
	if n == 0 {
		return 0, errors.NewValueError("MeanIntervalWidth", "empty vector")
	}
	if yUp.Len() != n {
		return 0, errors.NewDimensionError("MeanIntervalWidth", n, yUp.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += yUp.AtVec(i) - yLow.AtVec(i)
	}
	return sum / float64(n), nil
}

// MSE computes the mean squared error.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)
		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}
