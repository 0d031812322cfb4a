package planner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"grid-planner/grid"
)

// Compare runs each algorithm concurrently on the same grid and returns the
// outcomes in the order of algs. The grid is only read. Sampling planners
// each seed their own generator from t.Seed, so results match sequential Run
// calls. The first error cancels the runs that have not started yet.
func Compare(ctx context.Context, g *grid.OccupancyGrid, start, goal grid.Cell, algs []Algorithm, t Tunables) ([]*Outcome, error) {
	if len(algs) == 0 {
		algs = Algorithms
	}
	if err := g.Validate(start, goal); err != nil {
		return nil, err
	}

	outcomes := make([]*Outcome, len(algs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, alg := range algs {
		eg.Go(func() error {
			out, err := Run(egCtx, g, start, goal, alg, t)
			if err != nil {
				return fmt.Errorf("%s: %w", alg, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
