// Package astar implements batched best-first search on a grid.OccupancyGrid.
//
// The estimate of a cell is trunc(cost×scale) + scale×Manhattan(cell, goal),
// with orthogonal steps costing 1 and diagonal steps 1.4. Every round expands
// all frontier cells that share the minimal estimate at once, in ascending
// flat-index order. A cell is relaxed only on a strictly lower accumulated
// cost and is never touched again once processed. Obstacle cells are marked
// processed on first discovery and never expanded.
package astar

import (
	"fmt"
	"math"

	"grid-planner/grid"
	"grid-planner/route"
)

// search is the per-run state.
type search struct {
	g     *grid.OccupancyGrid
	goal  grid.Cell
	opts  Options
	scale float64

	cost       []float64
	estimate   []uint64
	pred       []int
	discovered []bool
	processed  []bool
	open       *frontier
}

// Plan runs A* from start to goal.
//
// On grid.ErrUnreachable the Result carries the explored costs and a Partial
// chain to the discovered cell closest to the goal.
func Plan(g *grid.OccupancyGrid, start, goal grid.Cell, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return &Result{Status: grid.StatusInvalidInput}, o.err
	}
	if err := g.Validate(start, goal); err != nil {
		return &Result{Status: grid.StatusInvalidInput}, err
	}

	s := newSearch(g, goal, o)
	s.discover(g.Index(start), route.NoPred, 0)

	res := &Result{}
	if start != goal {
		batch := make([]int, 0, 16)
		nbrs := make([]grid.Cell, 0, 8)
		goalIdx := g.Index(goal)
		for s.open.Len() > 0 && !s.discovered[goalIdx] {
			batch = s.open.popBatch(batch)
			for _, idx := range batch {
				s.processed[idx] = true
			}
			for _, idx := range batch {
				nbrs = s.expand(idx, nbrs)
			}
			res.Rounds++
			res.Expanded += len(batch)
		}
	}

	res.Cost, res.Pred = s.cost, s.pred
	res.Labels = make([]uint64, len(s.estimate))
	for i, e := range s.estimate {
		if s.discovered[i] && !g.BlockedAt(i) {
			res.Labels[i] = e / uint64(o.CostScale)
		}
	}

	if s.discovered[g.Index(goal)] {
		res.Status = grid.StatusSuccess
		res.Path = route.Backtrack(g, s.pred, goal)
		return res, nil
	}

	res.Status = grid.StatusUnreachable
	res.Path = grid.Path{}
	res.Partial = route.Backtrack(g, s.pred, s.nearest())
	return res, fmt.Errorf("%w: %d cells expanded from %v without discovering %v",
		grid.ErrUnreachable, res.Expanded, start, goal)
}

func newSearch(g *grid.OccupancyGrid, goal grid.Cell, o Options) *search {
	n := g.Area()
	s := &search{
		g:          g,
		goal:       goal,
		opts:       o,
		scale:      float64(o.CostScale),
		cost:       make([]float64, n),
		estimate:   make([]uint64, n),
		pred:       make([]int, n),
		discovered: make([]bool, n),
		processed:  make([]bool, n),
		open:       newFrontier(n),
	}
	for i := range s.cost {
		s.cost[i] = math.Inf(1)
		s.pred[i] = route.NoPred
	}
	return s
}

func (s *search) heuristic(idx int) uint64 {
	c := s.g.CellAt(idx)
	dr, dc := c.Row-s.goal.Row, c.Col-s.goal.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return uint64(s.opts.CostScale) * uint64(dr+dc)
}

// discover records a first visit and queues the cell.
func (s *search) discover(idx, from int, cost float64) {
	s.discovered[idx] = true
	s.pred[idx] = from
	s.cost[idx] = cost
	s.estimate[idx] = uint64(cost*s.scale) + s.heuristic(idx)
	s.opts.OnRelax(s.g.CellAt(idx), cost)
	s.open.upsert(idx, s.estimate[idx])
}

// expand relaxes the neighbors of a processed cell.
func (s *search) expand(idx int, nbrs []grid.Cell) []grid.Cell {
	cur := s.g.CellAt(idx)
	nbrs = s.g.AppendNeighbors(nbrs[:0], cur, s.opts.Connectivity)
	for _, n := range nbrs {
		ni := s.g.Index(n)
		if s.processed[ni] {
			continue
		}
		if s.g.BlockedAt(ni) {
			// walls are closed on sight
			s.discovered[ni] = true
			s.processed[ni] = true
			s.estimate[ni] = math.MaxUint64
			continue
		}

		step := OrthogonalCost
		if n.Row != cur.Row && n.Col != cur.Col {
			step = DiagonalCost
		}
		newCost := s.cost[idx] + step

		switch {
		case !s.discovered[ni]:
			s.discover(ni, idx, newCost)
		case newCost < s.cost[ni]:
			s.pred[ni] = idx
			s.cost[ni] = newCost
			s.estimate[ni] = uint64(newCost*s.scale) + s.heuristic(ni)
			s.opts.OnRelax(n, newCost)
			s.open.upsert(ni, s.estimate[ni])
		}
	}
	return nbrs
}

// nearest returns the discovered free cell closest to the goal by Manhattan
// distance, breaking ties on lower cost then lower index.
func (s *search) nearest() grid.Cell {
	best := -1
	var bestH uint64
	for i, d := range s.discovered {
		if !d || s.g.BlockedAt(i) {
			continue
		}
		h := s.heuristic(i)
		if best < 0 || h < bestH || (h == bestH && s.cost[i] < s.cost[best]) {
			best, bestH = i, h
		}
	}
	return s.g.CellAt(best)
}
