package rrt

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"grid-planner/grid"
	"grid-planner/route"
)

// distance is the Euclidean distance between two cell centers.
func distance(a, b grid.Cell) float64 {
	return planar.Distance(route.Point(a), route.Point(b))
}

// steer returns the point at most step away from `from` in the direction of
// `toward`, truncated to a cell, together with the from→toward distance.
// When toward is within reach it is returned unchanged.
func steer(from, toward grid.Cell, step float64) (grid.Cell, float64) {
	d := distance(from, toward)
	if step >= d {
		return toward, d
	}
	angle := math.Atan2(float64(toward.Row-from.Row), float64(toward.Col-from.Col))
	return grid.Cell{
		Row: int(float64(from.Row) + step*math.Sin(angle)),
		Col: int(float64(from.Col) + step*math.Cos(angle)),
	}, d
}

// box is the axis-aligned square of half-width r around c, borders included.
func box(c grid.Cell, r float64) orb.Bound {
	p := route.Point(c)
	return orb.Bound{
		Min: orb.Point{p.X() - r, p.Y() - r},
		Max: orb.Point{p.X() + r, p.Y() + r},
	}
}

func inBox(b orb.Bound, c grid.Cell) bool {
	return b.Contains(route.Point(c))
}
