// Package route turns planner bookkeeping (predecessor slices, parent-indexed
// trees, label fields) into start-to-goal paths, and post-processes paths.
//
// Every walk is bounded by the size of the structure it walks. An index that
// points outside the structure, or a chain longer than the structure itself
// (a cycle), is a programming error in the planner and panics.
package route

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"grid-planner/grid"
)

// NoPred marks a cell without predecessor (the seed of a search, or an undiscovered cell).
const NoPred = -1

// Backtrack walks pred from `to` back to the seed and returns the chain in
// seed→to order. pred holds flat grid indices.
func Backtrack(g *grid.OccupancyGrid, pred []int, to grid.Cell) grid.Path {
	path := Forward(g, pred, to)
	Reverse(path)
	return path
}

// Forward walks pred from `from` toward the seed and returns the chain in that order.
// Flood fill records predecessors pointing at the goal, so walking from the start
// yields a start→goal path directly.
func Forward(g *grid.OccupancyGrid, pred []int, from grid.Cell) grid.Path {
	if !g.InBounds(from) {
		panic(fmt.Sprintf("route: start cell %v outside %dx%d grid", from, g.Rows, g.Cols))
	}
	idx := g.Index(from)
	path := grid.Path{from}
	for steps := 0; pred[idx] != NoPred && pred[idx] != idx; steps++ {
		if steps >= len(pred) {
			panic("route: predecessor cycle")
		}
		next := pred[idx]
		if next < 0 || next >= len(pred) {
			panic(fmt.Sprintf("route: predecessor %d out of range", next))
		}
		idx = next
		path = append(path, g.CellAt(idx))
	}
	return path
}

// FromTree walks a parent-indexed node list from node `from` up to the root
// (the node that is its own parent) and returns node indices in root→from order.
func FromTree(parents []int, from int) []int {
	if from < 0 || from >= len(parents) {
		panic(fmt.Sprintf("route: tree node %d out of range", from))
	}
	chain := []int{from}
	for idx := from; parents[idx] != idx; {
		if len(chain) > len(parents) {
			panic("route: parent cycle")
		}
		idx = parents[idx]
		if idx < 0 || idx >= len(parents) {
			panic(fmt.Sprintf("route: parent %d out of range", idx))
		}
		chain = append(chain, idx)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Descend follows a wavefront label field downhill from `from` until it reaches
// the seed (label 1). At each step it moves to the 8-neighbor with the smallest
// label strictly below the current one; ties keep the first in neighbor order,
// so diagonal moves win. An unlabeled start yields an empty path.
func Descend(g *grid.OccupancyGrid, labels []uint64, from grid.Cell) grid.Path {
	if !g.InBounds(from) {
		panic(fmt.Sprintf("route: start cell %v outside %dx%d grid", from, g.Rows, g.Cols))
	}
	cur := from
	label := labels[g.Index(cur)]
	if label == 0 {
		return grid.Path{}
	}
	path := make(grid.Path, 0, label)
	path = append(path, cur)
	nbrs := make([]grid.Cell, 0, 8)
	for label > 1 {
		best, bestLabel := cur, label
		nbrs = g.AppendNeighbors(nbrs[:0], cur, grid.Conn8)
		for _, n := range nbrs {
			l := labels[g.Index(n)]
			if l != 0 && l < bestLabel {
				best, bestLabel = n, l
			}
		}
		if best == cur {
			panic(fmt.Sprintf("route: label field has no descent at %v", cur))
		}
		cur, label = best, bestLabel
		path = append(path, cur)
	}
	return path
}

// Reverse reverses p in place.
func Reverse(p grid.Path) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// Point maps a cell to planar coordinates (x = column, y = row).
func Point(c grid.Cell) orb.Point {
	return orb.Point{float64(c.Col), float64(c.Row)}
}

// LineString converts a path into an orb line string.
func LineString(p grid.Path) orb.LineString {
	ls := make(orb.LineString, len(p))
	for i, c := range p {
		ls[i] = Point(c)
	}
	return ls
}

// Length returns the Euclidean length of the polyline through p.
func Length(p grid.Path) float64 {
	if len(p) < 2 {
		return 0
	}
	return planar.Length(LineString(p))
}
