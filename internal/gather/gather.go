// Package gather runs independent tasks concurrently and collects their results.
package gather

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task produces one result
type Task[T any] func(ctx context.Context) (T, error)

// All starts every task at once and waits for all of them. Results keep the
// order of tasks. The first error cancels the context shared by the remaining
// tasks and is returned on its own: there are no partial results.
func All[T any](ctx context.Context, tasks ...Task[T]) ([]T, error) {
	results := make([]T, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		g.Go(func() error {
			v, err := task(gctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
