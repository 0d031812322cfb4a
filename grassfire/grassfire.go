package grassfire

import (
	"fmt"

	"grid-planner/grid"
	"grid-planner/route"
)

// Plan labels the grid outward from goal and extracts a start→goal path.
//
// The returned Result is non-nil whenever the inputs pass validation; on
// grid.ErrUnreachable it carries the explored label field and an empty path.
func Plan(g *grid.OccupancyGrid, start, goal grid.Cell, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return &Result{Status: grid.StatusInvalidInput}, err
	}
	if err := g.Validate(start, goal); err != nil {
		return &Result{Status: grid.StatusInvalidInput}, err
	}

	conn := o.Connectivity
	if o.Hybrid {
		conn = grid.Conn4
	}

	w := newWave(g, goal, conn, !o.FullField, g.Index(start))
	if o.Sweep {
		w.sweep()
	} else {
		w.frontier()
	}

	res := &Result{Labels: w.labels, Pred: w.pred, Rounds: w.rounds}
	if w.labels[g.Index(start)] == 0 {
		res.Status = grid.StatusUnreachable
		res.Path = grid.Path{}
		return res, fmt.Errorf("%w: wave from %v stabilized after %d rounds without reaching %v",
			grid.ErrUnreachable, goal, w.rounds, start)
	}

	res.Status = grid.StatusSuccess
	if o.Hybrid {
		res.Path = route.Descend(g, w.labels, start)
	} else {
		res.Path = route.Forward(g, w.pred, start)
	}
	return res, nil
}

// wave is the per-run relaxation state.
type wave struct {
	g         *grid.OccupancyGrid
	conn      grid.Connectivity
	seed      int
	labels    []uint64
	pred      []int
	stopAt    int // flat index whose labeling ends the run; -1 to run until stable
	rounds    int
	neighbors []grid.Cell
}

func newWave(g *grid.OccupancyGrid, goal grid.Cell, conn grid.Connectivity, stopEarly bool, start int) *wave {
	w := &wave{
		g:         g,
		conn:      conn,
		seed:      g.Index(goal),
		labels:    make([]uint64, g.Area()),
		pred:      make([]int, g.Area()),
		stopAt:    -1,
		neighbors: make([]grid.Cell, 0, 8),
	}
	for i := range w.pred {
		w.pred[i] = route.NoPred
	}
	if stopEarly {
		w.stopAt = start
	}
	w.labels[w.seed] = 1
	return w
}

func (w *wave) done() bool {
	return w.stopAt >= 0 && w.labels[w.stopAt] != 0
}

// relax labels the free unlabeled neighbors of idx and appends them to next.
func (w *wave) relax(idx int, next []int) []int {
	value := w.labels[idx] + 1
	w.neighbors = w.g.AppendNeighbors(w.neighbors[:0], w.g.CellAt(idx), w.conn)
	for _, n := range w.neighbors {
		ni := w.g.Index(n)
		if w.g.BlockedAt(ni) || w.labels[ni] != 0 {
			continue
		}
		w.labels[ni] = value
		w.pred[ni] = idx
		next = append(next, ni)
	}
	return next
}

// frontier expands only the cells labeled in the previous round.
func (w *wave) frontier() {
	last := []int{w.seed}
	var next []int
	for len(last) > 0 && !w.done() {
		next = next[:0]
		for _, idx := range last {
			next = w.relax(idx, next)
		}
		w.rounds++
		last, next = next, last
	}
}

// sweep scans the whole grid each pass, expanding the cells labeled k on pass k.
func (w *wave) sweep() {
	var scratch []int
	for k := uint64(1); !w.done(); k++ {
		changed := false
		for idx := range w.labels {
			if w.labels[idx] != k {
				continue
			}
			scratch = w.relax(idx, scratch[:0])
			changed = changed || len(scratch) > 0
		}
		w.rounds++
		if !changed {
			return
		}
	}
}
