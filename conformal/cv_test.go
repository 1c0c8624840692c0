package conformal

import (
	"testing"

	pkgerrors "github.com/LacombeLouis/MAPIE/pkg/errors"
)

// checkPartition verifies that validation sets are disjoint, cover every row
// exactly once, and that each train set is the complement of its val set.
func checkPartition(t *testing.T, folds []Fold, n int) {
	t.Helper()

	seen := make(map[int]int)
	for f, fold := range folds {
		inVal := make(map[int]bool, len(fold.Val))
		for _, i := range fold.Val {
			seen[i]++
			inVal[i] = true
		}
		if len(fold.Train)+len(fold.Val) != n {
			t.Errorf("fold %d: train+val = %d, want %d", f, len(fold.Train)+len(fold.Val), n)
		}
		for _, i := range fold.Train {
			if inVal[i] {
				t.Errorf("fold %d: row %d in both train and val", f, i)
			}
		}
	}
	for i := 0; i < n; i++ {
		if seen[i] != 1 {
			t.Errorf("row %d held out %d times, want 1", i, seen[i])
		}
	}
}

func TestKFoldSplit(t *testing.T) {
	k := NewKFold(3)
	folds, err := k.Split(10)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(folds) != 3 {
		t.Fatalf("got %d folds, want 3", len(folds))
	}

	// First n % NSplits folds take the extra row.
	wantSizes := []int{4, 3, 3}
	for f, fold := range folds {
		if len(fold.Val) != wantSizes[f] {
			t.Errorf("fold %d val size = %d, want %d", f, len(fold.Val), wantSizes[f])
		}
	}
	checkPartition(t, folds, 10)
}

func TestKFoldShuffleDeterministic(t *testing.T) {
	a := &KFold{NSplits: 3, Shuffle: true, Seed: 1}
	b := &KFold{NSplits: 3, Shuffle: true, Seed: 1}

	foldsA, err := a.Split(12)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	foldsB, err := b.Split(12)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	for f := range foldsA {
		if len(foldsA[f].Val) != len(foldsB[f].Val) {
			t.Fatalf("fold %d: val sizes differ", f)
		}
		for k := range foldsA[f].Val {
			if foldsA[f].Val[k] != foldsB[f].Val[k] {
				t.Errorf("fold %d: val[%d] differs: %d vs %d", f, k, foldsA[f].Val[k], foldsB[f].Val[k])
			}
		}
	}
	checkPartition(t, foldsA, 12)
}

func TestKFoldValidation(t *testing.T) {
	if _, err := NewKFold(1).Split(10); err == nil {
		t.Error("expected error for n_splits < 2")
	}
	_, err := NewKFold(11).Split(10)
	if err == nil {
		t.Fatal("expected error for n_splits > n")
	}
	var valErr *pkgerrors.ValidationError
	if !pkgerrors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestLeaveOneOut(t *testing.T) {
	folds, err := LeaveOneOut{}.Split(4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(folds) != 4 {
		t.Fatalf("got %d folds, want 4", len(folds))
	}
	for f, fold := range folds {
		if len(fold.Val) != 1 || fold.Val[0] != f {
			t.Errorf("fold %d: val = %v, want [%d]", f, fold.Val, f)
		}
		if len(fold.Train) != 3 {
			t.Errorf("fold %d: train size = %d, want 3", f, len(fold.Train))
		}
	}
	checkPartition(t, folds, 4)

	if _, err := (LeaveOneOut{}).Split(1); err == nil {
		t.Error("expected error for n < 2")
	}
}

func TestPrefitSplit(t *testing.T) {
	folds, err := Prefit{}.Split(10)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if folds != nil {
		t.Errorf("prefit plan should have no folds, got %d", len(folds))
	}
	if got := (Prefit{}).Name(); got != "prefit" {
		t.Errorf("Name() = %q, want %q", got, "prefit")
	}
}
