// Package parallel provides a small helper for splitting row-indexed work
// across CPU cores. Batch inference over visualization grids is the main
// consumer.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits items across up to NumCPU workers and calls fn with the
// half-open range [start, end) each worker owns. It returns when every worker
// has finished.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
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

// ParallelizeWithThreshold runs fn(0, items) sequentially when items is at or
// below threshold, and parallelizes otherwise. Small batches stay on one
// goroutine to avoid scheduling overhead.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
