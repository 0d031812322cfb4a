package grassfire

import (
	"errors"
	"fmt"

	"grid-planner/grid"
)

// ErrOptionViolation is returned when an invalid Option or option combination is supplied.
var ErrOptionViolation = errors.New("grassfire: invalid option supplied")

// Option configures Plan via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation when Plan runs.
type Option func(*Options)

// Options holds the planner configuration.
type Options struct {
	// Sweep selects the full-scan discipline instead of the frontier one.
	Sweep bool

	// Connectivity used for relaxation. Ignored for path extraction in Hybrid mode.
	Connectivity grid.Connectivity

	// Hybrid labels with 4-connectivity and extracts the path over 8-connected steps.
	Hybrid bool

	// FullField keeps relaxing after the start is labeled, until the wave stabilizes.
	FullField bool

	err error
}

// DefaultOptions returns frontier discipline, 4-connectivity, early stop.
func DefaultOptions() Options {
	return Options{Connectivity: grid.Conn4}
}

// WithSweep selects the sweep discipline.
func WithSweep() Option {
	return func(o *Options) { o.Sweep = true }
}

// WithConnectivity selects the relaxation neighborhood.
func WithConnectivity(c grid.Connectivity) Option {
	return func(o *Options) {
		if c != grid.Conn4 && c != grid.Conn8 {
			o.err = fmt.Errorf("%w: unknown connectivity %d", ErrOptionViolation, int(c))
			return
		}
		o.Connectivity = c
	}
}

// WithHybrid enables 4-connected labeling with 8-connected path extraction.
func WithHybrid() Option {
	return func(o *Options) { o.Hybrid = true }
}

// WithFullField labels every reachable cell instead of stopping at the start.
func WithFullField() Option {
	return func(o *Options) { o.FullField = true }
}

func (o *Options) validate() error {
	if o.err != nil {
		return o.err
	}
	if o.Hybrid && o.Connectivity == grid.Conn8 {
		return fmt.Errorf("%w: hybrid mode labels with 4-connectivity, Conn8 given", ErrOptionViolation)
	}
	return nil
}

// Result holds the outcome of a flood-fill run.
type Result struct {
	Status grid.Status

	// Path from start to goal; empty unless Status is StatusSuccess.
	Path grid.Path

	// Labels per flat cell index: 0 unlabeled, 1 the goal, k the k-th wave.
	Labels []uint64

	// Pred per flat cell index, pointing one step toward the goal; route.NoPred if none.
	Pred []int

	// Rounds is the number of relaxation rounds (frontier) or passes (sweep) executed.
	Rounds int
}

// Label returns the label of c, or 0 when c is out of bounds or unlabeled.
func (r *Result) Label(g *grid.OccupancyGrid, c grid.Cell) uint64 {
	if !g.InBounds(c) || len(r.Labels) == 0 {
		return 0
	}
	return r.Labels[g.Index(c)]
}

// MaxLabel returns the largest label in the field.
func (r *Result) MaxLabel() uint64 {
	var m uint64
	for _, l := range r.Labels {
		m = max(m, l)
	}
	return m
}
