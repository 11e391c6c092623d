// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"
)

// Config controls batch execution across samples.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Map runs fn over items on a worker pool and returns the outputs in input
// order. Samples are independent units of work: fn must not share mutable
// state across calls. A cancelled context stops feeding work; completed slots
// keep their results and unstarted slots hold zero values.
func Map[T any](ctx context.Context, cfg Config, items []string, fn func(ctx context.Context, item string) T) ([]T, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		idx  int
		item string
	}
	jobs := make(chan job, cfg.Threads*2)
	out := make([]T, len(items))

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					out[j.idx] = fn(ctx, j.item)
				}
			}
		}()
	}

feed:
	for i, it := range items {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, item: it}:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
