package ingest

import (
	"runtime"
	"sync"
)

// Skipped records a file that failed to decode and was dropped from the run.
type Skipped struct {
	Path   string
	Reason string
}

// Summary is the result of one ingestion stage.
type Summary struct {
	Written    int
	Violations int
	Skipped    []Skipped
}

// decodeAll runs fn over paths with at most workers goroutines in flight.
// Results keep the order of paths, so downstream last-wins persistence is
// deterministic regardless of scheduling. Failed paths come back as Skipped.
func decodeAll[T any](paths []string, workers int, fn func(path string) (T, error)) ([]T, []Skipped) {
	if len(paths) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type slot struct {
		val T
		err error
	}
	slots := make([]slot, len(paths))

	limiter := make(chan struct{}, workers)
	var wg sync.WaitGroup
	wg.Add(len(paths))
	for i, path := range paths {
		i, path := i, path
		limiter <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-limiter }()
			slots[i].val, slots[i].err = fn(path)
		}()
	}
	wg.Wait()

	out := make([]T, 0, len(paths))
	var skipped []Skipped
	for i := range slots {
		if slots[i].err != nil {
			skipped = append(skipped, Skipped{Path: paths[i], Reason: slots[i].err.Error()})
			continue
		}
		out = append(out, slots[i].val)
	}
	return out, skipped
}
