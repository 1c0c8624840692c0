package conformal

import (
	"math/rand"

	"github.com/LacombeLouis/MAPIE/pkg/errors"
)

// Fold is one (train, validation) index pair of a resampling plan. Both
// slices index rows of the dataset passed to Fit. Train may contain
// duplicates for bootstrap plans; Val may be empty when a bootstrap
// resampling happens to draw every block.
type Fold struct {
	Train []int
	Val   []int
}

// Splitter generates a resampling plan for n observations.
type Splitter interface {
	// Split returns the plan's folds. Implementations must be
	// deterministic for a fixed seed.
	Split(n int) ([]Fold, error)

	// Name identifies the strategy for logging.
	Name() string
}

// KFold splits rows into NSplits consecutive (or shuffled) folds. Each fold
// is the validation set exactly once; the remaining rows form the training
// set.
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    int64
}

// NewKFold creates a KFold splitter without shuffling, which preserves
// temporal ordering.
func NewKFold(nSplits int) *KFold {
	return &KFold{NSplits: nSplits}
}

// Split implements Splitter.
func (k *KFold) Split(n int) ([]Fold, error) {
	if k.NSplits < 2 {
		return nil, errors.NewValidationError("n_splits", "must be at least 2", k.NSplits)
	}
	if k.NSplits > n {
		return nil, errors.NewValidationError("n_splits", "cannot exceed the number of observations", k.NSplits)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if k.Shuffle {
		rng := rand.New(rand.NewSource(k.Seed))
		rng.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	// First n % NSplits folds take one extra row.
	folds := make([]Fold, k.NSplits)
	perFold := n / k.NSplits
	remainder := n % k.NSplits

	idx := 0
	for f := 0; f < k.NSplits; f++ {
		size := perFold
		if f < remainder {
			size++
		}
		val := make([]int, size)
		copy(val, order[idx:idx+size])

		train := make([]int, 0, n-size)
		train = append(train, order[:idx]...)
		train = append(train, order[idx+size:]...)

		folds[f] = Fold{Train: train, Val: val}
		idx += size
	}
	return folds, nil
}

// Name implements Splitter.
func (k *KFold) Name() string { return "kfold" }

// LeaveOneOut is the jackknife plan: n folds, each holding out exactly one
// row.
type LeaveOneOut struct{}

// Split implements Splitter.
func (LeaveOneOut) Split(n int) ([]Fold, error) {
	if n < 2 {
		return nil, errors.NewValidationError("n", "leave-one-out requires at least 2 observations", n)
	}

	folds := make([]Fold, n)
	for i := 0; i < n; i++ {
		train := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				train = append(train, j)
			}
		}
		folds[i] = Fold{Train: train, Val: []int{i}}
	}
	return folds, nil
}

// Name implements Splitter.
func (LeaveOneOut) Name() string { return "loo" }

// Prefit marks the estimator as trained externally. No resampling occurs:
// the whole dataset passed to Fit becomes the calibration set.
type Prefit struct{}

// Split implements Splitter. A prefit plan has no folds.
func (Prefit) Split(n int) ([]Fold, error) {
	return nil, nil
}

// Name implements Splitter.
func (Prefit) Name() string { return "prefit" }
