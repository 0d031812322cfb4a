// Package grassfire implements wavefront (grassfire) path planning on a grid.OccupancyGrid.
//
// What
//
//   - Seeds the goal with label 1 and relaxes outward: every unlabeled free
//     neighbor of a cell labeled k receives k+1.
//   - Each cell is labeled exactly once, at its minimal breadth-first depth.
//   - The path is read from the start toward the goal along decreasing labels.
//
// Disciplines
//
//   - Frontier (default): only the cells labeled in the previous round are expanded.
//   - Sweep (WithSweep): every pass scans the whole grid and expands the cells
//     carrying the previous pass's label. Same labels, more work.
//
// Connectivity
//
//   - Conn4 (default) or Conn8 (WithConnectivity).
//   - Hybrid (WithHybrid): label with 4-connectivity, then descend the label
//     field over 8-connected steps. Never longer than the 4-connected path.
//
// Complexity (N = rows*cols)
//
//   - Frontier: O(N) time.
//   - Sweep:    O(N*D) time where D is the label of the start.
//   - Memory:   O(N) for labels and predecessors.
//
// Usage
//
//	res, err := grassfire.Plan(g, start, goal, grassfire.WithHybrid())
//	if errors.Is(err, grid.ErrUnreachable) {
//		// res.Labels still holds the explored field
//	}
//
// Errors
//
//   - grid.ErrInvalidInput    start or goal out of bounds or blocked.
//   - grid.ErrUnreachable     the wave stabilized without labeling the start.
//   - ErrOptionViolation      invalid option or option combination.
package grassfire
