package route

import (
	"math"

	"github.com/paulmach/orb"

	"grid-planner/grid"
)

// Simplify reduces the number of waypoints using Douglas-Peucker.
// A span is only collapsed to its endpoints when every dropped cell is within
// epsilon of the chord and the chord itself has line of sight on g, so the
// result stays collision-free. The output is a subsequence of p.
func Simplify(g *grid.OccupancyGrid, p grid.Path, epsilon float64) grid.Path {
	if len(p) <= 2 {
		out := make(grid.Path, len(p))
		copy(out, p)
		return out
	}
	return douglasPeucker(g, p, epsilon)
}

func douglasPeucker(g *grid.OccupancyGrid, cells grid.Path, epsilon float64) grid.Path {
	end := len(cells) - 1
	if end <= 1 {
		return append(grid.Path(nil), cells...)
	}

	// Find the cell farthest from the chord
	dmax := 0.0
	index := 1
	a, b := Point(cells[0]), Point(cells[end])
	for i := 1; i < end; i++ {
		d := perpendicularDistance(Point(cells[i]), a, b)
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax > epsilon || !g.LineOfSight(cells[0], cells[end]) {
		left := douglasPeucker(g, cells[:index+1], epsilon)
		right := douglasPeucker(g, cells[index:], epsilon)

		// Combine, dropping the duplicate split cell
		result := make(grid.Path, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	return grid.Path{cells[0], cells[end]}
}

// perpendicularDistance is the distance from point to the infinite line through lineStart and lineEnd.
func perpendicularDistance(point, lineStart, lineEnd orb.Point) float64 {
	dx := lineEnd.X() - lineStart.X()
	dy := lineEnd.Y() - lineStart.Y()

	mag := math.Sqrt(dx*dx + dy*dy)
	if mag > 0 {
		dx /= mag
		dy /= mag
	}

	pvx := point.X() - lineStart.X()
	pvy := point.Y() - lineStart.Y()

	// Project onto the direction and take the rejection
	pvdot := dx*pvx + dy*pvy
	ax := pvx - pvdot*dx
	ay := pvy - pvdot*dy

	return math.Sqrt(ax*ax + ay*ay)
}
