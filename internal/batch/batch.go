// Package batch solves one LQR problem from many initial states in
// parallel. Each solve is independent; results keep the input order.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/lqrplan/internal/lqr"
	"golang.org/x/sync/errgroup"
)

// Result pairs an initial state index with its plan.
type Result struct {
	Index int
	Plan  *lqr.Plan
}

// Solve runs lqr.Solve for base with each of states substituted as the
// current state. At most workers solves run at once (<= 0 means
// GOMAXPROCS). The first failing solve cancels the rest and its error is
// returned with the offending index.
func Solve(ctx context.Context, base lqr.Problem, states [][]float64, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(states))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, x0 := range states {
		i, x0 := i, x0 // per-iteration copies (go directive is < 1.22)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := base
			p.State = x0
			plan, err := lqr.Solve(p)
			if err != nil {
				return fmt.Errorf("batch: state %d: %w", i, err)
			}
			results[i] = Result{Index: i, Plan: plan}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
