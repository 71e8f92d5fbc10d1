// Package scheduler provides the two fork-join primitives the simulation's
// tree builder and force evaluator run on top of: a chunked parallel-for
// over a dense index range, and a fixed-width fan-out/join over a small set
// of tasks (the 2ᴰ root-octant sub-builds). Both suspend only at chunk
// boundaries or the final join; neither performs any I/O.
package scheduler

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Config controls how work is spread across workers.
type Config struct {
	// Workers is the number of logical workers to use. Zero or negative
	// means runtime.NumCPU().
	Workers int

	// MinChunkSize is the smallest index range handed to a single worker.
	// A ParallelFor over fewer than MinChunkSize elements runs on a single
	// worker rather than paying goroutine overhead for no benefit.
	MinChunkSize int
}

// DefaultConfig returns a Config sized to the host's logical CPU count with
// a chunk floor of 1024 elements.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU(), MinChunkSize: 1024}
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func (c Config) minChunk() int {
	if c.MinChunkSize <= 0 {
		return 1024
	}
	return c.MinChunkSize
}

// ParallelFor splits [0, n) into contiguous chunks and runs fn once per
// chunk, across up to cfg.Workers goroutines (runtime.NumCPU() when
// Workers is zero or negative), via errgroup.WithContext.
// Each chunk is visited exactly once, on some worker; chunks never overlap
// and a worker never migrates mid-chunk. If any fn call returns an error,
// ParallelFor cancels ctx for the remaining chunks and returns the first
// error observed.
func ParallelFor(ctx context.Context, n int, cfg Config, fn func(ctx context.Context, lo, hi int) error) error {
	if n <= 0 {
		return nil
	}

	workers := cfg.workers()
	chunk := cfg.minChunk()
	if perWorker := (n + workers - 1) / workers; perWorker > chunk {
		chunk = perWorker
	}
	if chunk > n {
		chunk = n
	}

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			return fn(gctx, lo, hi)
		})
	}
	return g.Wait()
}

// ForkJoin runs each task concurrently and waits for all of them to finish,
// returning the first non-nil error, if any. It is meant for small, fixed
// task counts (the tree builder's 2ᴰ root-octant sub-builds) where the
// per-task setup cost of errgroup's limiter is unnecessary.
func ForkJoin(tasks ...func() error) error {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		firstErr error
	)
	wg.Add(len(tasks))
	for _, task := range tasks {
		task := task
		go func() {
			defer wg.Done()
			if err := task(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return firstErr
}
