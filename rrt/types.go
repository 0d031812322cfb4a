package rrt

import (
	"errors"
	"fmt"

	"grid-planner/grid"
)

// Defaults.
const (
	// MaxNodes is the hard cap on tree size.
	MaxNodes = 16383
	// DefaultStepDistance is the maximum length of a new tree edge.
	DefaultStepDistance = 10.0
	// DefaultCaptureRadius is the half-width of the square around the goal in which proposals snap onto it.
	DefaultCaptureRadius = 5
	// DefaultRewireFactor scales the step distance into the RRT* rewire half-width.
	DefaultRewireFactor = 2.0
)

var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("rrt: invalid option supplied")
	// ErrNilSource is returned when Plan is called without a random source.
	ErrNilSource = errors.New("rrt: random source is nil")
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Option configures Plan.
type Option func(*Options)

// Options holds the sampling planner configuration.
type Options struct {
	// Star enables cost-based parent choice and rewiring (RRT*).
	Star bool

	StepDistance  float64
	MaxNodes      int
	RewireFactor  float64
	CaptureRadius int

	// MaxSamples bounds the number of random draws; 0 means unlimited.
	MaxSamples int

	err error
}

// DefaultOptions returns plain RRT with the default tunables.
func DefaultOptions() Options {
	return Options{
		StepDistance:  DefaultStepDistance,
		MaxNodes:      MaxNodes,
		RewireFactor:  DefaultRewireFactor,
		CaptureRadius: DefaultCaptureRadius,
	}
}

// WithStar enables RRT*.
func WithStar() Option {
	return func(o *Options) { o.Star = true }
}

// WithStepDistance sets the maximum edge length (> 0).
func WithStepDistance(d float64) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: step distance must be positive (%g)", ErrOptionViolation, d)
			return
		}
		o.StepDistance = d
	}
}

// WithMaxNodes caps the tree size (> 0). The effective budget is still bounded
// by the grid area divided by the step distance.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: node cap must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxNodes = n
	}
}

// WithRewireFactor sets the RRT* rewire half-width as a multiple of the step distance.
func WithRewireFactor(f float64) Option {
	return func(o *Options) {
		if f <= 0 {
			o.err = fmt.Errorf("%w: rewire factor must be positive (%g)", ErrOptionViolation, f)
			return
		}
		o.RewireFactor = f
	}
}

// WithCaptureRadius sets the half-width of the goal capture square (>= 0).
func WithCaptureRadius(r int) Option {
	return func(o *Options) {
		if r < 0 {
			o.err = fmt.Errorf("%w: capture radius cannot be negative (%d)", ErrOptionViolation, r)
			return
		}
		o.CaptureRadius = r
	}
}

// WithMaxSamples bounds the number of random draws (0 = unlimited).
func WithMaxSamples(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: sample cap cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSamples = n
	}
}

// Node is a tree vertex. The root is its own parent.
type Node struct {
	Pos      grid.Cell `json:"pos"`
	Parent   int       `json:"parent"`
	Distance float64   `json:"distance"` // path length from the root along parent links
}

// Result holds the outcome of a sampling run.
type Result struct {
	Status grid.Status

	// Path from start to goal; empty unless Status is StatusSuccess.
	Path grid.Path

	// Partial is the chain from start to the tree node nearest the goal
	// when the goal was never absorbed.
	Partial grid.Path

	Tree *Tree

	// Budget is the effective node budget of the run.
	Budget int
	// Samples is the number of random targets drawn.
	Samples int
	// FoundAt is the tree size when the goal was first absorbed, 0 if never.
	FoundAt int
}

// Best returns Path on success and Partial otherwise.
func (r *Result) Best() grid.Path {
	if r.Status == grid.StatusSuccess {
		return r.Path
	}
	return r.Partial
}
