package obstacles

import (
	"errors"
	"fmt"
	"log"

	"grid-planner/grid"
)

// DefaultMaxAttempts bounds GenerateValid retries.
const DefaultMaxAttempts = 100

var (
	// ErrNoValidMap is returned when every generated layout blocked the start or the goal.
	ErrNoValidMap = errors.New("obstacles: unable to generate a map with free start and goal")

	// ErrNegativeCount is returned for a negative obstacle count.
	ErrNegativeCount = errors.New("obstacles: obstacle count cannot be negative")
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Generate places count random rectangles on a rows×cols grid. Heights are
// drawn from [0, rows/10) and widths from [0, cols/10); grids smaller than
// 10 cells in either direction get no obstacles.
func Generate(rows, cols, count int, rng Source) (*Map, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	maxH, maxW := rows/10, cols/10
	var rects []Rect
	if maxH > 0 && maxW > 0 {
		rects = make([]Rect, 0, count)
		for i := 0; i < count; i++ {
			rects = append(rects, Rect{
				Row:    rng.Intn(rows),
				Col:    rng.Intn(cols),
				Height: rng.Intn(maxH),
				Width:  rng.Intn(maxW),
			})
		}
	}
	return NewMap(rows, cols, RemoveContained(rects))
}

// GenerateValid retries Generate until start and goal are both free, up to
// maxAttempts times (DefaultMaxAttempts when maxAttempts <= 0). It returns the
// map and the number of attempts used.
func GenerateValid(rows, cols, count int, start, goal grid.Cell, rng Source, maxAttempts int) (*Map, int, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		m, err := Generate(rows, cols, count, rng)
		if err != nil {
			return nil, attempt, err
		}
		if !m.Covers(start) && !m.Covers(goal) {
			return m, attempt, nil
		}
		log.Printf("⚠️  Map %d invalid: start or goal is inside an obstacle\n", attempt)
	}
	return nil, maxAttempts, fmt.Errorf("%w: %d attempts on %dx%d with %d obstacles",
		ErrNoValidMap, maxAttempts, rows, cols, count)
}
