// Package rrt grows rapidly-exploring random trees (RRT and RRT*) on a grid.OccupancyGrid.
//
// Each iteration draws a random target cell. Every tree node not sitting on
// the goal proposes a point at most StepDistance toward the target; among the
// proposals whose edge has line of sight, the one from the node nearest the
// target wins. A proposal inside the capture square around the goal snaps onto
// the goal when the proposing node can see the goal. Growth continues until
// the node budget is spent, even after the goal has been absorbed.
//
// With WithStar the winning point is parented to the visible node that
// minimizes root distance plus edge length, and nearby nodes are rewired
// through the new node when that strictly shortens their root distance.
//
// Runs are deterministic for a given Source.
package rrt

import (
	"fmt"
	"math"

	"grid-planner/grid"
)

// planner is the per-run state.
type planner struct {
	g    *grid.OccupancyGrid
	goal grid.Cell
	opts Options
	rng  Source
	tree *Tree

	capture   float64
	rewireBox float64
}

// Budget returns the effective node budget for g under o:
// min(o.MaxNodes, area/step), at least 1.
func Budget(g *grid.OccupancyGrid, o Options) int {
	n := o.MaxNodes
	if f := float64(g.Area()) / o.StepDistance; f < float64(n) {
		n = int(f)
	}
	return max(n, 1)
}

// Plan grows a tree from start and extracts a path to goal.
//
// Without absorbing the goal it returns grid.ErrResourceExhausted together
// with the full tree and a Partial chain to the node nearest the goal.
func Plan(g *grid.OccupancyGrid, start, goal grid.Cell, rng Source, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return &Result{Status: grid.StatusInvalidInput}, o.err
	}
	if rng == nil {
		return &Result{Status: grid.StatusInvalidInput}, ErrNilSource
	}
	if err := g.Validate(start, goal); err != nil {
		return &Result{Status: grid.StatusInvalidInput}, err
	}

	budget := Budget(g, o)
	p := &planner{
		g:         g,
		goal:      goal,
		opts:      o,
		rng:       rng,
		tree:      newTree(start, budget),
		capture:   float64(o.CaptureRadius),
		rewireBox: o.RewireFactor * o.StepDistance,
	}
	res := &Result{Tree: p.tree, Budget: budget}

	if start == goal {
		res.Status = grid.StatusSuccess
		res.Path = grid.Path{start}
		res.FoundAt = 1
		return res, nil
	}

	for p.tree.Len() < budget && (o.MaxSamples == 0 || res.Samples < o.MaxSamples) {
		target := grid.Cell{Row: rng.Intn(g.Rows), Col: rng.Intn(g.Cols)}
		res.Samples++
		if p.grow(target) && res.FoundAt == 0 {
			res.FoundAt = p.tree.Len()
		}
	}

	if i := p.tree.Find(goal); i >= 0 {
		res.Status = grid.StatusSuccess
		res.Path = p.tree.PathTo(i)
		return res, nil
	}

	nearest, _ := p.tree.Nearest(goal)
	res.Status = grid.StatusResourceExhausted
	res.Path = grid.Path{}
	res.Partial = p.tree.PathTo(nearest)
	return res, fmt.Errorf("%w: %d nodes grown from %v in %d samples without reaching %v",
		grid.ErrResourceExhausted, p.tree.Len(), start, res.Samples, goal)
}

// grow extends the tree toward target and reports whether the new node is the goal.
func (p *planner) grow(target grid.Cell) bool {
	from, pos, ok := p.propose(target)
	if !ok {
		return false
	}

	node := Node{Pos: pos, Parent: from}
	node.Distance = p.tree.Nodes[from].Distance + distance(p.tree.Nodes[from].Pos, pos)
	if p.opts.Star {
		node.Parent, node.Distance = p.chooseParent(pos, from, node.Distance)
	}
	p.tree.Nodes = append(p.tree.Nodes, node)
	if p.opts.Star {
		p.rewire(len(p.tree.Nodes) - 1)
	}
	return pos == p.goal
}

// propose steers every growable node toward target and keeps the visible
// proposal whose node is nearest the target.
func (p *planner) propose(target grid.Cell) (int, grid.Cell, bool) {
	best, bestPos := -1, grid.Cell{}
	bestDist := math.MaxFloat64
	goalBox := box(p.goal, p.capture)

	for i, n := range p.tree.Nodes {
		if n.Pos == p.goal {
			continue
		}
		pos, d := steer(n.Pos, target, p.opts.StepDistance)
		if !(bestDist > d) || !p.g.LineOfSight(n.Pos, pos) {
			continue
		}
		bestDist = d
		best = i
		if inBox(goalBox, pos) && p.g.LineOfSight(n.Pos, p.goal) {
			bestPos = p.goal
		} else {
			bestPos = pos
		}
	}
	return best, bestPos, best >= 0
}

// chooseParent picks the visible node minimizing root distance plus edge length.
// The proposing node is always visible, so the search starts from it.
func (p *planner) chooseParent(pos grid.Cell, from int, dist float64) (int, float64) {
	parent := from
	for i, n := range p.tree.Nodes {
		if n.Pos == p.goal {
			continue
		}
		d := n.Distance + distance(n.Pos, pos)
		if d < dist && p.g.LineOfSight(n.Pos, pos) {
			parent, dist = i, d
		}
	}
	return parent, dist
}

// rewire reparents nodes around the newest node through it when that strictly
// shortens their root distance.
func (p *planner) rewire(newest int) {
	nn := p.tree.Nodes[newest]
	area := box(nn.Pos, p.rewireBox)
	for i := range p.tree.Nodes {
		n := &p.tree.Nodes[i]
		if i == newest || n.Pos == nn.Pos || !inBox(area, n.Pos) {
			continue
		}
		d := nn.Distance + distance(nn.Pos, n.Pos)
		if d < n.Distance && p.g.LineOfSight(n.Pos, nn.Pos) {
			n.Parent = newest
			n.Distance = d
		}
	}
}
