package dynamo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch runs independent simulations concurrently for the same number of
// steps. Each simulation must be owned by the batch for its duration. At
// most limit run at once; limit <= 0 means no limit. The first error
// cancels the remaining runs.
func Batch(ctx context.Context, sims []*Simulation, steps, limit int) ([]*Result, error) {
	results := make([]*Result, len(sims))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, s := range sims {
		i, s := i, s
		g.Go(func() error {
			r, err := s.Run(ctx, steps)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
