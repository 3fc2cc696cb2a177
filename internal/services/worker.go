package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runIndexed calls fn once for every index in [0, n). With a concurrency of
// one the calls run in order on the calling goroutine; otherwise at most
// concurrency calls are in flight. fn must only write to its own index.
func runIndexed(ctx context.Context, n, concurrency int, fn func(ctx context.Context, index int)) {
	if concurrency <= 1 {
		for i := 0; i < n; i++ {
			fn(ctx, i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}

	_ = g.Wait()
}
