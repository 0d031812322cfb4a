package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction and planning outcomes.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")

	// ErrInvalidInput indicates a start or goal outside the grid or inside an obstacle.
	ErrInvalidInput = errors.New("grid: invalid start or goal")
	// ErrUnreachable indicates the relaxation stabilized without connecting start and goal.
	ErrUnreachable = errors.New("grid: goal unreachable from start")
	// ErrResourceExhausted indicates a node budget ran out before the goal was absorbed.
	ErrResourceExhausted = errors.New("grid: node budget exhausted before reaching goal")
)

// Connectivity selects the neighborhood used for expansion.
type Connectivity int

const (
	// Conn4 uses the four orthogonal neighbors.
	Conn4 Connectivity = iota
	// Conn8 adds the four diagonal neighbors.
	Conn8
)

// String returns "4" or "8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "8"
	}
	return "4"
}

// ParseConnectivity maps 4 or 8 to a Connectivity.
func ParseConnectivity(n int) (Connectivity, error) {
	switch n {
	case 4:
		return Conn4, nil
	case 8:
		return Conn8, nil
	default:
		return Conn4, fmt.Errorf("grid: connectivity must be 4 or 8, got %d", n)
	}
}

// Cell is a (row, col) position on the grid.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Path is an ordered start-to-goal sequence of cells. It may be empty.
type Path []Cell

// Contains reports whether c is on the path.
func (p Path) Contains(c Cell) bool {
	for _, q := range p {
		if q == c {
			return true
		}
	}
	return false
}

// Edge is a parent→child connection of a sampling tree.
type Edge struct {
	From Cell `json:"from"`
	To   Cell `json:"to"`
}

// Status is the outcome of a planning run.
type Status int

const (
	// StatusSuccess means a start-to-goal path was found.
	StatusSuccess Status = iota
	// StatusInvalidInput means the run was rejected before planning.
	StatusInvalidInput
	// StatusUnreachable means the search space was exhausted without reaching the goal.
	StatusUnreachable
	// StatusResourceExhausted means the node budget ran out first.
	StatusResourceExhausted
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidInput:
		return "invalid-input"
	case StatusUnreachable:
		return "unreachable"
	case StatusResourceExhausted:
		return "resource-exhausted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Err returns the sentinel error matching s, or nil for StatusSuccess.
func (s Status) Err() error {
	switch s {
	case StatusInvalidInput:
		return ErrInvalidInput
	case StatusUnreachable:
		return ErrUnreachable
	case StatusResourceExhausted:
		return ErrResourceExhausted
	default:
		return nil
	}
}

// StatusOf maps an error returned by a planner back to its Status.
// Errors that wrap none of the sentinels report StatusInvalidInput.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrUnreachable):
		return StatusUnreachable
	case errors.Is(err, ErrResourceExhausted):
		return StatusResourceExhausted
	default:
		return StatusInvalidInput
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{StatusSuccess, StatusInvalidInput, StatusUnreachable, StatusResourceExhausted} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("grid: unknown status %q", text)
}
