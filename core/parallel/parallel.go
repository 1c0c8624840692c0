// Package parallel provides the worker-pool primitive used for per-fold
// estimator fits. Work units are independent and each writes only its own
// output slot, so results are identical for any worker count.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across all available CPU cores and executes fn
// for each contiguous range [start, end).
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeWorkers(items, 0, fn)
}

// ParallelizeWorkers is Parallelize with an explicit worker count.
// workers <= 0 means runtime.NumCPU(). The item-to-range assignment depends
// only on items and the effective worker count, never on scheduling order.
func ParallelizeWorkers(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	if workers == 1 {
		fn(0, items)
		return
	}

	// Ceiling division so every item lands in exactly one chunk.
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs sequentially when items is at or below
// threshold, in parallel otherwise. Small fold counts are cheaper without
// goroutine overhead.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
