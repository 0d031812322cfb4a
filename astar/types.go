package astar

import (
	"errors"
	"fmt"

	"grid-planner/grid"
)

// Step costs for orthogonal and diagonal moves. The diagonal cost is the
// one-decimal approximation of √2 so that costs scale cleanly by ten.
const (
	OrthogonalCost = 1.0
	DiagonalCost   = 1.4
)

// DefaultCostScale multiplies accumulated cost and heuristic before truncation to integers.
const DefaultCostScale = 10

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("astar: invalid option supplied")

// Option configures Plan.
type Option func(*Options)

// Options holds the A* configuration.
type Options struct {
	Connectivity grid.Connectivity
	CostScale    int

	// OnRelax observes every accumulated-cost assignment, first discovery included.
	OnRelax func(c grid.Cell, cost float64)

	err error
}

// DefaultOptions returns 8-connectivity, cost scale 10 and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Connectivity: grid.Conn8,
		CostScale:    DefaultCostScale,
		OnRelax:      func(grid.Cell, float64) {},
	}
}

// WithConnectivity selects the expansion neighborhood.
func WithConnectivity(c grid.Connectivity) Option {
	return func(o *Options) {
		if c != grid.Conn4 && c != grid.Conn8 {
			o.err = fmt.Errorf("%w: unknown connectivity %d", ErrOptionViolation, int(c))
			return
		}
		o.Connectivity = c
	}
}

// WithCostScale sets the integer scale applied to cost and heuristic.
//
//	n > 0: use n
//	n <= 0: invalid option → ErrOptionViolation
func WithCostScale(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: cost scale must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.CostScale = n
	}
}

// WithOnRelax registers a hook called on every cost assignment.
func WithOnRelax(fn func(c grid.Cell, cost float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRelax = fn
		}
	}
}

// Result holds the outcome of an A* run.
type Result struct {
	Status grid.Status

	// Path from start to goal; empty unless Status is StatusSuccess.
	Path grid.Path

	// Partial is the chain from start to the discovered cell nearest the goal
	// when the goal was not reached.
	Partial grid.Path

	// Cost is the accumulated cost per flat index; +Inf for walls and undiscovered cells.
	Cost []float64

	// Labels is estimate/scale per flat index for display; 0 where undiscovered or blocked.
	Labels []uint64

	// Pred per flat index, pointing one step toward the start.
	Pred []int

	Rounds   int
	Expanded int
}

// Best returns Path on success and Partial otherwise.
func (r *Result) Best() grid.Path {
	if r.Status == grid.StatusSuccess {
		return r.Path
	}
	return r.Partial
}
