// Package grid models the 2-D occupancy grid shared by every planner.
//
// What:
//
//   - OccupancyGrid stores an immutable free/blocked flag per cell in a flat,
//     row-major slice. Planners keep their own per-run labels next to it.
//   - Neighbors4 / Neighbors8 enumerate in-bounds adjacent cells in a fixed order.
//   - LineOfSight rasterizes a segment (Bresenham) and reports whether every
//     traversed cell, endpoints included, is free.
//   - Status and the sentinel errors describe planning outcomes shared by all
//     planners: InvalidInput, Unreachable and ResourceExhausted.
//
// Neighbor order:
//
//   - 4-neighborhood: (r+1,c) (r-1,c) (r,c+1) (r,c-1)
//   - 8-neighborhood: (r+1,c+1) (r-1,c+1) (r+1,c-1) (r-1,c-1), then the 4-neighborhood.
//
// Complexity:
//
//   - IsBlocked, InBounds, Index: O(1).
//   - LineOfSight: O(max(|dr|, |dc|)).
package grid
