package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run calls fn for every input with at most limit calls in flight and returns
// the results in input order. The first error cancels the context handed to the
// remaining calls and is returned once all started calls have finished.
func Run[T any](ctx context.Context, inputs []string, limit int, fn func(ctx context.Context, index int, input string) (T, error)) ([]T, error) {
	startTime := time.Now()
	if limit <= 0 {
		limit = 1
	}
	zap.S().Debugf("Dispatching %d jobs with max concurrency %d", len(inputs), limit)

	results := make([]T, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, input := range inputs {
		g.Go(func() error {
			jobStart := time.Now()
			res, err := fn(gctx, i, input)
			if err != nil {
				zap.S().Warnf("Job %d failed after %v: %v", i, time.Since(jobStart), err)
				return err
			}
			results[i] = res
			zap.S().Debugf("Job %d completed in %v", i, time.Since(jobStart))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	zap.S().Debugf("All %d jobs completed in %v", len(inputs), time.Since(startTime))
	return results, nil
}
