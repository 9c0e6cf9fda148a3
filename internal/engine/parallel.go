package engine

import (
	"context"
	"runtime"
	"sync"

	"spiralsim/internal/config"
)

// parallelFor executes fn over chunks of [0, n). Callers write to
// distinct indices only, so the split never changes results.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > 8 {
		workers = 8
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// RunSeeds runs the same configuration across several seeds, one
// goroutine per seed, and returns results in seed order. Parameter
// arrays the base config leaves empty regenerate per seed.
func RunSeeds(ctx context.Context, base *config.Config, seeds []int64) ([]*Result, error) {
	results := make([]*Result, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, seed int64) {
			defer wg.Done()

			cfg := base.Clone()
			cfg.Seed = seed

			eng, err := New(cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = eng.Run(ctx)
		}(i, seed)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
