package langviz

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelMap evaluates fn(i) for every i in [0,n) across a bounded worker
// pool and returns the results in input order. Each goroutine writes only
// its own disjoint output slot, so no synchronization is needed on the
// result slice itself. fn must be a pure function of its index and
// whatever immutable inputs it closes over.
func parallelMap[T any](n int, fn func(i int) T) []T {
	out := make([]T, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = fn(0)
		return out
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			out[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
