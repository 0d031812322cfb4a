// Package planner runs the grid planners by name with one set of tunables.
//
// Unreachable and ResourceExhausted runs are not errors here: they are
// reported through Outcome.Status with an empty Path, and any best-effort
// chain goes to Outcome.Partial. Run and Compare only fail for invalid
// endpoints, unknown algorithms or bad tunables.
package planner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"grid-planner/astar"
	"grid-planner/config"
	"grid-planner/grassfire"
	"grid-planner/grid"
	"grid-planner/route"
	"grid-planner/rrt"
)

// ErrUnknownAlgorithm is returned for an algorithm name Run cannot dispatch.
var ErrUnknownAlgorithm = errors.New("planner: unknown algorithm")

// Algorithm names a planner.
type Algorithm string

const (
	Grassfire Algorithm = "grassfire"
	AStar     Algorithm = "astar"
	RRT       Algorithm = "rrt"
	RRTStar   Algorithm = "rrt-star"
)

// Algorithms lists every planner in a stable order.
var Algorithms = []Algorithm{Grassfire, AStar, RRT, RRTStar}

// ParseAlgorithm accepts the names above, case-insensitively. "a*" and
// "rrt*" are accepted as aliases.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grassfire", "floodfill", "flood-fill":
		return Grassfire, nil
	case "astar", "a*":
		return AStar, nil
	case "rrt":
		return RRT, nil
	case "rrt-star", "rrtstar", "rrt*":
		return RRTStar, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// Tunables configures every planner at once; each algorithm reads its own fields.
type Tunables struct {
	Connectivity grid.Connectivity
	Seed         int64

	// SimplifyEpsilon > 0 post-processes successful paths with route.Simplify.
	SimplifyEpsilon float64

	Sweep     bool
	Hybrid    bool
	FullField bool

	CostScale int

	StepDistance  float64
	MaxNodes      int
	RewireFactor  float64
	CaptureRadius int
	MaxSamples    int
}

// DefaultTunables mirrors config.Default.
func DefaultTunables() Tunables {
	t, _ := TunablesFrom(config.Default().Planner)
	return t
}

// TunablesFrom converts the planner section of a config file.
func TunablesFrom(c config.PlannerConfig) (Tunables, error) {
	conn, err := grid.ParseConnectivity(c.Connectivity)
	if err != nil {
		return Tunables{}, err
	}
	return Tunables{
		Connectivity:    conn,
		Seed:            c.Seed,
		SimplifyEpsilon: c.SimplifyEpsilon,
		Sweep:           c.Grassfire.Sweep,
		Hybrid:          c.Grassfire.Hybrid,
		FullField:       c.Grassfire.FullField,
		CostScale:       c.AStar.CostScale,
		StepDistance:    c.RRT.StepDistance,
		MaxNodes:        c.RRT.MaxNodes,
		RewireFactor:    c.RRT.RewireFactor,
		CaptureRadius:   c.RRT.CaptureRadius,
		MaxSamples:      c.RRT.MaxSamples,
	}, nil
}

// Stats are algorithm-specific counters; unused fields stay zero.
type Stats struct {
	Rounds   int `json:"rounds,omitempty"`
	Expanded int `json:"expanded,omitempty"`
	Samples  int `json:"samples,omitempty"`
	TreeSize int `json:"treeSize,omitempty"`
	Budget   int `json:"budget,omitempty"`
	FoundAt  int `json:"foundAt,omitempty"`
}

// Outcome is the algorithm-independent view of one run.
type Outcome struct {
	Algorithm Algorithm   `json:"algorithm"`
	Status    grid.Status `json:"status"`

	// Path is the start-to-goal path; empty unless Status is success.
	Path   grid.Path `json:"path"`
	Length float64   `json:"length"`

	// Partial is the chain from start toward the goal when the goal was not
	// reached (A* and RRT only).
	Partial grid.Path `json:"partial,omitempty"`

	// Labels is the per-cell label field (flood fill and A* only).
	Labels []uint64 `json:"-"`
	// Edges of the sampling tree (RRT only).
	Edges []grid.Edge `json:"edges,omitempty"`
	Tree  *rrt.Tree   `json:"-"`

	Stats   Stats         `json:"stats"`
	Elapsed time.Duration `json:"elapsedNs"`
}

// Found reports whether the run connected start and goal.
func (o *Outcome) Found() bool { return o.Status == grid.StatusSuccess }

// Run plans one route. ctx is only checked before planning starts; planners
// run to completion once begun.
func Run(ctx context.Context, g *grid.OccupancyGrid, start, goal grid.Cell, alg Algorithm, t Tunables) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.Validate(start, goal); err != nil {
		return nil, err
	}

	began := time.Now()
	out := &Outcome{Algorithm: alg}
	var err error
	switch alg {
	case Grassfire:
		err = runGrassfire(g, start, goal, t, out)
	case AStar:
		err = runAStar(g, start, goal, t, out)
	case RRT, RRTStar:
		err = runRRT(g, start, goal, t, alg == RRTStar, out)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
	out.Elapsed = time.Since(began)

	out.Status = grid.StatusOf(err)
	if out.Status == grid.StatusInvalidInput {
		return nil, err
	}
	if out.Found() && t.SimplifyEpsilon > 0 {
		out.Path = route.Simplify(g, out.Path, t.SimplifyEpsilon)
	}
	out.Length = route.Length(out.Path)
	return out, nil
}

func runGrassfire(g *grid.OccupancyGrid, start, goal grid.Cell, t Tunables, out *Outcome) error {
	opts := []grassfire.Option{grassfire.WithConnectivity(t.Connectivity)}
	if t.Hybrid {
		opts = []grassfire.Option{grassfire.WithConnectivity(grid.Conn4), grassfire.WithHybrid()}
	}
	if t.Sweep {
		opts = append(opts, grassfire.WithSweep())
	}
	if t.FullField {
		opts = append(opts, grassfire.WithFullField())
	}

	res, err := grassfire.Plan(g, start, goal, opts...)
	if res != nil {
		out.Path = res.Path
		out.Labels = res.Labels
		out.Stats.Rounds = res.Rounds
	}
	return err
}

func runAStar(g *grid.OccupancyGrid, start, goal grid.Cell, t Tunables, out *Outcome) error {
	res, err := astar.Plan(g, start, goal,
		astar.WithConnectivity(t.Connectivity),
		astar.WithCostScale(t.CostScale),
	)
	if res != nil {
		out.Path = res.Path
		out.Partial = res.Partial
		out.Labels = res.Labels
		out.Stats.Rounds = res.Rounds
		out.Stats.Expanded = res.Expanded
	}
	return err
}

func runRRT(g *grid.OccupancyGrid, start, goal grid.Cell, t Tunables, star bool, out *Outcome) error {
	opts := []rrt.Option{
		rrt.WithStepDistance(t.StepDistance),
		rrt.WithMaxNodes(t.MaxNodes),
		rrt.WithRewireFactor(t.RewireFactor),
		rrt.WithCaptureRadius(t.CaptureRadius),
		rrt.WithMaxSamples(t.MaxSamples),
	}
	if star {
		opts = append(opts, rrt.WithStar())
	}

	res, err := rrt.Plan(g, start, goal, rand.New(rand.NewSource(t.Seed)), opts...)
	if res != nil {
		out.Path = res.Path
		out.Partial = res.Partial
		out.Stats.Samples = res.Samples
		out.Stats.Budget = res.Budget
		out.Stats.FoundAt = res.FoundAt
		if res.Tree != nil {
			out.Tree = res.Tree
			out.Edges = res.Tree.Edges()
			out.Stats.TreeSize = res.Tree.Len()
		}
	}
	return err
}
