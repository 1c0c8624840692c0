package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		workers int
	}{
		{name: "single worker", items: 100, workers: 1},
		{name: "two workers", items: 100, workers: 2},
		{name: "more workers than items", items: 3, workers: 16},
		{name: "all cores", items: 57, workers: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visited := make([]int32, tt.items)
			ParallelizeWorkers(tt.items, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&visited[i], 1)
				}
			})

			for i, count := range visited {
				if count != 1 {
					t.Errorf("item %d visited %d times, want exactly once", i, count)
				}
			}
		})
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	ParallelizeWorkers(0, 4, func(start, end int) { called = true })
	if called {
		t.Error("fn should not be called for zero items")
	}
}

func TestWorkerCountInvariance(t *testing.T) {
	// Each item computes into its own slot; the result must not depend on
	// the worker count.
	const items = 64
	compute := func(workers int) []float64 {
		out := make([]float64, items)
		ParallelizeWorkers(items, workers, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = float64(i*i) / 3.0
			}
		})
		return out
	}

	serial := compute(1)
	for _, workers := range []int{2, 3, 8, 0} {
		parallel := compute(workers)
		for i := range serial {
			if serial[i] != parallel[i] {
				t.Fatalf("workers=%d: item %d = %v, serial = %v", workers, i, parallel[i], serial[i])
			}
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(10, 20, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("sequential path got range [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("below threshold should run once sequentially, ran %d times", calls)
	}
}
