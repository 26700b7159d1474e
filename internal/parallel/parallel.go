// Package parallel runs independent jobs on a bounded pool of goroutines.
//
// Jobs must not share mutable state: each training job owns its network and
// gradient network, so no locking happens here.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Upper bound on concurrently running jobs.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// workers returns how many goroutines to start for n jobs.
func (c Config) workers(n int) int {
	if !c.Enabled || c.NumWorkers <= 1 {
		return 1
	}
	return min(c.NumWorkers, n)
}

// For calls f(ctx, i) once for every i in [0, n) and waits for all calls.
//
// With parallelism disabled the calls run in index order on the calling
// goroutine. Once ctx is done, jobs that have not started are skipped; running
// jobs observe ctx themselves. For returns ctx.Err() if any job was skipped.
func For(ctx context.Context, n int, f func(ctx context.Context, i int), cfg Config) error {
	if n <= 0 {
		return nil
	}

	w := cfg.workers(n)
	if w == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			f(ctx, i)
		}
		return nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for k := 0; k < w; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f(ctx, i)
			}
		}()
	}

	var err error
	for i := 0; i < n && err == nil; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()
	return err
}
