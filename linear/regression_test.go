package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/LacombeLouis/MAPIE/pkg/errors"
)

const tol = 1e-9

func TestFitRecoversLinearRelation(t *testing.T) {
	// y = 2x + 1
	X := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	y := mat.NewDense(5, 1, []float64{1, 3, 5, 7, 9})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	coef := lr.Coef()
	if math.Abs(coef[0]-2.0) > tol {
		t.Errorf("coef = %v, want 2.0", coef[0])
	}
	if math.Abs(lr.Intercept()-1.0) > tol {
		t.Errorf("intercept = %v, want 1.0", lr.Intercept())
	}

	preds, err := lr.Predict(mat.NewDense(2, 1, []float64{5, 6}))
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if math.Abs(preds.At(0, 0)-11.0) > tol || math.Abs(preds.At(1, 0)-13.0) > tol {
		t.Errorf("predictions = (%v, %v), want (11, 13)", preds.At(0, 0), preds.At(1, 0))
	}
}

func TestFitWithoutIntercept(t *testing.T) {
	// y = 3x, no offset
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 6, 9, 12})

	lr := NewLinearRegression(WithFitIntercept(false))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if math.Abs(lr.Coef()[0]-3.0) > tol {
		t.Errorf("coef = %v, want 3.0", lr.Coef()[0])
	}
	if lr.Intercept() != 0 {
		t.Errorf("intercept = %v, want 0", lr.Intercept())
	}
}

func TestConstantWeightsDoNotChangeSolution(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		1, 2,
		2, 1,
		3, 4,
		4, 3,
		5, 7,
		6, 5,
	})
	y := mat.NewDense(6, 1, []float64{5.1, 4.2, 10.8, 10.1, 18.7, 16.2})

	fit := func(weights []float64) []float64 {
		lr := NewLinearRegression()
		if err := lr.FitWeighted(X, y, weights); err != nil {
			t.Fatalf("FitWeighted() error: %v", err)
		}
		return append(lr.Coef(), lr.Intercept())
	}

	unweighted := fit(nil)
	ones := fit([]float64{1, 1, 1, 1, 1, 1})
	fives := fit([]float64{5, 5, 5, 5, 5, 5})

	for i := range unweighted {
		if math.Abs(unweighted[i]-ones[i]) > 1e-8 {
			t.Errorf("param %d: unweighted %v != unit weights %v", i, unweighted[i], ones[i])
		}
		if math.Abs(unweighted[i]-fives[i]) > 1e-8 {
			t.Errorf("param %d: unweighted %v != constant weights %v", i, unweighted[i], fives[i])
		}
	}
}

func TestNonConstantWeightsChangeSolution(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewDense(4, 1, []float64{0, 1.5, 3.5, 10})

	uniform := NewLinearRegression()
	if err := uniform.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	skewed := NewLinearRegression()
	if err := skewed.FitWeighted(X, y, []float64{10, 1, 1, 0.01}); err != nil {
		t.Fatalf("FitWeighted() error: %v", err)
	}

	if math.Abs(uniform.Coef()[0]-skewed.Coef()[0]) < 1e-6 {
		t.Error("non-constant weights should change the fitted slope")
	}
}

func TestPredictNotFitted(t *testing.T) {
	lr := NewLinearRegression()
	_, err := lr.Predict(mat.NewDense(1, 1, []float64{1}))
	if err == nil {
		t.Fatal("Predict before Fit should fail")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("expected *NotFittedError, got %T", err)
	}
}

func TestFitDimensionValidation(t *testing.T) {
	lr := NewLinearRegression()

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	yBadRows := mat.NewDense(2, 1, []float64{1, 2})
	if err := lr.Fit(X, yBadRows); err == nil {
		t.Error("Fit should fail on row count mismatch")
	}

	yOK := mat.NewDense(3, 1, []float64{1, 2, 3})
	if err := lr.FitWeighted(X, yOK, []float64{1, 1}); err == nil {
		t.Error("FitWeighted should fail on weight length mismatch")
	}
	if err := lr.FitWeighted(X, yOK, []float64{1, -1, 1}); err == nil {
		t.Error("FitWeighted should fail on negative weights")
	}
}

func TestCloneEstimatorIsIndependent(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})

	lr := NewLinearRegression(WithFitIntercept(false))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	clone := lr.CloneEstimator().(*LinearRegression)
	if clone.IsFitted() {
		t.Error("clone must start unfitted")
	}
	if clone.fitIntercept != lr.fitIntercept {
		t.Error("clone must carry hyperparameters")
	}

	// Fitting the clone must not disturb the original.
	y2 := mat.NewDense(3, 1, []float64{10, 20, 30})
	if err := clone.Fit(X, y2); err != nil {
		t.Fatalf("clone Fit() error: %v", err)
	}
	if math.Abs(lr.Coef()[0]-2.0) > tol {
		t.Errorf("original coef changed to %v after fitting clone", lr.Coef()[0])
	}
	if math.Abs(clone.Coef()[0]-10.0) > tol {
		t.Errorf("clone coef = %v, want 10", clone.Coef()[0])
	}
}

func TestScore(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if math.Abs(score-1.0) > tol {
		t.Errorf("Score() = %v, want 1.0 for perfect fit", score)
	}
}
