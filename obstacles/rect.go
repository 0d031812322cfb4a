// Package obstacles builds occupancy grids from rectangular obstacles: random
// generation, an R-tree index for cover and region queries, GeoJSON exchange
// and JSON persistence.
package obstacles

import (
	"fmt"

	"github.com/paulmach/orb"

	"grid-planner/grid"
)

// Rect is an axis-aligned block of cells starting at (Row, Col).
type Rect struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Height int `json:"height"`
	Width  int `json:"width"`
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Height, r.Width, r.Row, r.Col)
}

// Empty reports whether r covers no cell.
func (r Rect) Empty() bool { return r.Height <= 0 || r.Width <= 0 }

// Contains reports whether cell c lies inside r.
func (r Rect) Contains(c grid.Cell) bool {
	return c.Row >= r.Row && c.Row < r.Row+r.Height &&
		c.Col >= r.Col && c.Col < r.Col+r.Width
}

// Within reports whether r lies entirely inside o.
func (r Rect) Within(o Rect) bool {
	return r.Row >= o.Row && r.Row+r.Height <= o.Row+o.Height &&
		r.Col >= o.Col && r.Col+r.Width <= o.Col+o.Width
}

// Clip trims r to a rows×cols grid.
func (r Rect) Clip(rows, cols int) Rect {
	top, left := max(r.Row, 0), max(r.Col, 0)
	bottom, right := min(r.Row+r.Height, rows), min(r.Col+r.Width, cols)
	return Rect{Row: top, Col: left, Height: max(bottom-top, 0), Width: max(right-left, 0)}
}

// Bound returns the planar extent of r (x = column, y = row), cell borders included.
func (r Rect) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(r.Col), float64(r.Row)},
		Max: orb.Point{float64(r.Col + r.Width), float64(r.Row + r.Height)},
	}
}

// FromBound returns the smallest Rect whose cells cover b.
func FromBound(b orb.Bound) Rect {
	row, col := floor(b.Min.Y()), floor(b.Min.X())
	return Rect{
		Row:    row,
		Col:    col,
		Height: ceil(b.Max.Y()) - row,
		Width:  ceil(b.Max.X()) - col,
	}
}

func floor(v float64) int {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return i
}

func ceil(v float64) int {
	i := int(v)
	if float64(i) < v {
		i++
	}
	return i
}
