package obstacles

import (
	"errors"
	"fmt"

	"github.com/dhconnelly/rtreego"

	"grid-planner/grid"
)

// ErrEmptyMap indicates a map without rows or columns.
var ErrEmptyMap = errors.New("obstacles: map must have at least one row and one column")

// rectEntry wraps a rectangle for R-tree storage.
type rectEntry struct {
	Rect Rect
	BBox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *rectEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// Map is a rows×cols obstacle layout indexed by an R-tree.
// A Map is read-only after construction and safe for concurrent queries.
type Map struct {
	Rows  int
	Cols  int
	Rects []Rect

	tree *rtreego.Rtree
}

// NewMap clips rects to the grid, drops the empty ones and indexes the rest.
func NewMap(rows, cols int, rects []Rect) (*Map, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyMap, rows, cols)
	}
	m := &Map{
		Rows:  rows,
		Cols:  cols,
		Rects: make([]Rect, 0, len(rects)),
		tree:  rtreego.NewTree(2, 25, 50), // 2D, min 25, max 50 entries per node
	}
	for _, r := range rects {
		r = r.Clip(rows, cols)
		if r.Empty() {
			continue
		}
		bbox, err := rectBounds(r)
		if err != nil {
			return nil, fmt.Errorf("index %v: %w", r, err)
		}
		m.Rects = append(m.Rects, r)
		m.tree.Insert(&rectEntry{Rect: r, BBox: bbox})
	}
	return m, nil
}

// Len returns the number of indexed rectangles.
func (m *Map) Len() int { return len(m.Rects) }

// Covers reports whether any obstacle covers cell c. Cells outside the map count as covered.
func (m *Map) Covers(c grid.Cell) bool {
	if c.Row < 0 || c.Row >= m.Rows || c.Col < 0 || c.Col >= m.Cols {
		return true
	}
	center := rtreego.Point{float64(c.Col) + 0.5, float64(c.Row) + 0.5}
	return len(m.tree.SearchIntersect(center.ToRect(0.25))) > 0
}

// QueryRegion returns the obstacles intersecting the cell range
// [minRow, maxRow] × [minCol, maxCol], bounds included.
func (m *Map) QueryRegion(minRow, minCol, maxRow, maxCol int) []Rect {
	if maxRow < minRow || maxCol < minCol {
		return []Rect{}
	}
	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(minCol) + 0.25, float64(minRow) + 0.25},
		[]float64{float64(maxCol-minCol) + 0.5, float64(maxRow-minRow) + 0.5},
	)
	if err != nil {
		return []Rect{}
	}

	results := m.tree.SearchIntersect(bbox)
	rects := make([]Rect, 0, len(results))
	for _, item := range results {
		rects = append(rects, item.(*rectEntry).Rect)
	}
	return rects
}

// Grid rasterizes the map into an occupancy grid.
func (m *Map) Grid() *grid.OccupancyGrid {
	g, err := grid.New(m.Rows, m.Cols)
	if err != nil {
		// NewMap guarantees positive dimensions
		panic(err)
	}
	for _, r := range m.Rects {
		for row := r.Row; row < r.Row+r.Height; row++ {
			for col := r.Col; col < r.Col+r.Width; col++ {
				g.SetBlocked(grid.Cell{Row: row, Col: col}, true)
			}
		}
	}
	return g
}

// rectBounds computes the R-tree rectangle for a non-empty Rect.
func rectBounds(r Rect) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{float64(r.Col), float64(r.Row)},
		[]float64{float64(r.Width), float64(r.Height)},
	)
}
