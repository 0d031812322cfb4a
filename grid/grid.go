package grid

import (
	"fmt"
	"strings"
)

// offsets4 and offsets8 hold (dRow, dCol) pairs in the documented neighbor order.
var (
	offsets4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	offsets8 = [8][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// OccupancyGrid is a rows×cols map of free and blocked cells.
// Cells are addressed row-major: index = row*Cols + col.
type OccupancyGrid struct {
	Rows, Cols int
	blocked    []bool
}

// New returns an obstacle-free grid.
func New(rows, cols int) (*OccupancyGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	return &OccupancyGrid{
		Rows:    rows,
		Cols:    cols,
		blocked: make([]bool, rows*cols),
	}, nil
}

// FromRows builds a grid from a rectangular [row][col] matrix where true marks an obstacle.
// The input is copied.
func FromRows(cells [][]bool) (*OccupancyGrid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	cols := len(cells[0])
	for _, row := range cells {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(len(cells), cols)
	if err != nil {
		return nil, err
	}
	for r, row := range cells {
		copy(g.blocked[r*cols:(r+1)*cols], row)
	}
	return g, nil
}

// Parse builds a grid from text rows, one cell per rune: '#' is blocked,
// anything else is free.
func Parse(lines ...string) (*OccupancyGrid, error) {
	cells := make([][]bool, len(lines))
	for r, line := range lines {
		runes := []rune(strings.TrimSpace(line))
		cells[r] = make([]bool, len(runes))
		for c, ch := range runes {
			cells[r][c] = ch == '#'
		}
	}
	return FromRows(cells)
}

// Area returns Rows*Cols.
func (g *OccupancyGrid) Area() int { return g.Rows * g.Cols }

// InBounds reports whether c lies inside the grid.
func (g *OccupancyGrid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Index returns the flat index of c. c must be in bounds.
func (g *OccupancyGrid) Index(c Cell) int { return c.Row*g.Cols + c.Col }

// CellAt is the inverse of Index.
func (g *OccupancyGrid) CellAt(i int) Cell { return Cell{Row: i / g.Cols, Col: i % g.Cols} }

// IsBlocked reports whether c is an obstacle. Cells outside the grid count as blocked.
func (g *OccupancyGrid) IsBlocked(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.blocked[g.Index(c)]
}

// BlockedAt is IsBlocked for a flat index.
func (g *OccupancyGrid) BlockedAt(i int) bool { return g.blocked[i] }

// SetBlocked marks c as blocked or free. Out-of-bounds cells are ignored.
// Grids are meant to be mutated only while being built, before planning starts.
func (g *OccupancyGrid) SetBlocked(c Cell, blocked bool) {
	if g.InBounds(c) {
		g.blocked[g.Index(c)] = blocked
	}
}

// BlockedCount returns the number of obstacle cells.
func (g *OccupancyGrid) BlockedCount() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *OccupancyGrid) Clone() *OccupancyGrid {
	cp := &OccupancyGrid{Rows: g.Rows, Cols: g.Cols, blocked: make([]bool, len(g.blocked))}
	copy(cp.blocked, g.blocked)
	return cp
}

// Neighbors4 returns the in-bounds orthogonal neighbors of c.
func (g *OccupancyGrid) Neighbors4(c Cell) []Cell {
	return g.AppendNeighbors(make([]Cell, 0, 4), c, Conn4)
}

// Neighbors8 returns the in-bounds orthogonal and diagonal neighbors of c.
func (g *OccupancyGrid) Neighbors8(c Cell) []Cell {
	return g.AppendNeighbors(make([]Cell, 0, 8), c, Conn8)
}

// Neighbors dispatches on conn.
func (g *OccupancyGrid) Neighbors(c Cell, conn Connectivity) []Cell {
	if conn == Conn8 {
		return g.Neighbors8(c)
	}
	return g.Neighbors4(c)
}

// AppendNeighbors appends the in-bounds neighbors of c to dst and returns it.
// Planners reuse dst across expansions to avoid allocating per cell.
func (g *OccupancyGrid) AppendNeighbors(dst []Cell, c Cell, conn Connectivity) []Cell {
	var offsets [][2]int
	if conn == Conn8 {
		offsets = offsets8[:]
	} else {
		offsets = offsets4[:]
	}
	for _, d := range offsets {
		n := Cell{Row: c.Row + d[0], Col: c.Col + d[1]}
		if g.InBounds(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// Validate checks that start and goal are inside the grid and not blocked.
// A nil grid is invalid input as well.
func (g *OccupancyGrid) Validate(start, goal Cell) error {
	if g == nil {
		return fmt.Errorf("%w: grid is nil", ErrInvalidInput)
	}
	for _, p := range []struct {
		name string
		cell Cell
	}{{"start", start}, {"goal", goal}} {
		if !g.InBounds(p.cell) {
			return fmt.Errorf("%w: %s %v outside %dx%d grid", ErrInvalidInput, p.name, p.cell, g.Rows, g.Cols)
		}
		if g.IsBlocked(p.cell) {
			return fmt.Errorf("%w: %s %v is inside an obstacle", ErrInvalidInput, p.name, p.cell)
		}
	}
	return nil
}

// String renders the grid with '#' for obstacles and '.' for free cells.
func (g *OccupancyGrid) String() string {
	var b strings.Builder
	b.Grow(g.Rows * (g.Cols + 1))
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.blocked[r*g.Cols+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
