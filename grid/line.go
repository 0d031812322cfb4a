package grid

import "math"

// StepCost returns the cost of a single move between adjacent cells:
// 1 for orthogonal steps and √2 for diagonal steps.
func StepCost(a, b Cell) float64 {
	if a.Row != b.Row && a.Col != b.Col {
		return math.Sqrt2
	}
	return 1
}

// Trace walks the Bresenham rasterization from p1 to p2, endpoints included,
// calling visit for every cell. It stops early and returns false as soon as
// visit returns false.
func Trace(p1, p2 Cell, visit func(Cell) bool) bool {
	r, c := p1.Row, p1.Col
	dr := abs(p2.Row - r)
	dc := -abs(p2.Col - c)
	sr, sc := 1, 1
	if p2.Row < r {
		sr = -1
	}
	if p2.Col < c {
		sc = -1
	}
	err := dr + dc
	for {
		if !visit(Cell{Row: r, Col: c}) {
			return false
		}
		if r == p2.Row && c == p2.Col {
			return true
		}
		e2 := 2 * err
		if e2 >= dc {
			err += dc
			r += sr
		}
		if e2 <= dr {
			err += dr
			c += sc
		}
	}
}

// Line returns the rasterized cells from p1 to p2.
func Line(p1, p2 Cell) []Cell {
	n := max(abs(p2.Row-p1.Row), abs(p2.Col-p1.Col)) + 1
	cells := make([]Cell, 0, n)
	Trace(p1, p2, func(c Cell) bool {
		cells = append(cells, c)
		return true
	})
	return cells
}

// LineOfSight reports whether the straight segment p1→p2 crosses only free cells.
// A zero-length segment is always clear.
func (g *OccupancyGrid) LineOfSight(p1, p2 Cell) bool {
	if p1 == p2 {
		return true
	}
	return Trace(p1, p2, func(c Cell) bool {
		return !g.IsBlocked(c)
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
