package effects

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultBatch is the number of elements handed to a worker at a time.
const DefaultBatch = 64

// ParallelFor calls fn for every index in [0, n), splitting the range into
// batches run on at most workers goroutines, and returns once every batch has
// finished. Each index is visited exactly once. The first error cancels the
// remaining batches and is returned.
func ParallelFor(ctx context.Context, n, batch, workers int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if batch <= 0 {
		batch = DefaultBatch
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += batch {
		end := min(start+batch, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
