package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	pkgerrors "github.com/LacombeLouis/MAPIE/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		var sum, sumSquares float64
		for i := 0; i < r; i++ {
			sum += scaled.At(i, j)
		}
		mean := sum / float64(r)
		if math.Abs(mean) > 1e-12 {
			t.Errorf("feature %d: mean = %v, want 0", j, mean)
		}
		for i := 0; i < r; i++ {
			diff := scaled.At(i, j) - mean
			sumSquares += diff * diff
		}
		std := math.Sqrt(sumSquares / float64(r))
		if math.Abs(std-1) > 1e-12 {
			t.Errorf("feature %d: std = %v, want 1", j, std)
		}
	}
}

func TestStandardScalerRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{2, 4, 9})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	back, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform: %v", err)
	}

	for i := 0; i < 3; i++ {
		if math.Abs(back.At(i, 0)-X.At(i, 0)) > 1e-12 {
			t.Errorf("row %d: round trip %v, want %v", i, back.At(i, 0), X.At(i, 0))
		}
	}
}

func TestStandardScalerConstantFeature(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{7, 7, 7})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := scaled.At(i, 0); got != 0 {
			t.Errorf("row %d: got %v, want 0", i, got)
		}
	}
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScaler()

	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))
	var nf *pkgerrors.NotFittedError
	if !pkgerrors.As(err, &nf) {
		t.Errorf("expected NotFittedError, got %v", err)
	}

	if err := scaler.Fit(mat.NewDense(2, 1, []float64{1, 2})); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	_, err = scaler.Transform(mat.NewDense(1, 2, []float64{1, 2}))
	var dim *pkgerrors.DimensionError
	if !pkgerrors.As(err, &dim) {
		t.Errorf("expected DimensionError, got %v", err)
	}
}
