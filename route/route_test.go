package route_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/grid"
	"grid-planner/route"
)

func cell(r, c int) grid.Cell { return grid.Cell{Row: r, Col: c} }

func TestBacktrack(t *testing.T) {
	g, _ := grid.New(1, 4)
	// seed (0,0) ← (0,1) ← (0,2) ← (0,3)
	pred := []int{route.NoPred, 0, 1, 2}
	assert.Equal(t, grid.Path{cell(0, 0), cell(0, 1), cell(0, 2), cell(0, 3)}, route.Backtrack(g, pred, cell(0, 3)))
	assert.Equal(t, grid.Path{cell(0, 0)}, route.Backtrack(g, pred, cell(0, 0)))
}

func TestForward(t *testing.T) {
	g, _ := grid.New(2, 2)
	// predecessors point at the seed (1,1)
	pred := []int{3, 3, 3, route.NoPred}
	assert.Equal(t, grid.Path{cell(0, 0), cell(1, 1)}, route.Forward(g, pred, cell(0, 0)))
}

func TestForward_PanicsOnCycle(t *testing.T) {
	g, _ := grid.New(1, 2)
	pred := []int{1, 0}
	assert.Panics(t, func() { route.Forward(g, pred, cell(0, 0)) })
}

func TestForward_PanicsOutOfRange(t *testing.T) {
	g, _ := grid.New(1, 2)
	pred := []int{7, route.NoPred}
	assert.Panics(t, func() { route.Forward(g, pred, cell(0, 0)) })
}

func TestFromTree(t *testing.T) {
	parents := []int{0, 0, 1, 1, 3}
	assert.Equal(t, []int{0, 1, 3, 4}, route.FromTree(parents, 4))
	assert.Equal(t, []int{0}, route.FromTree(parents, 0))
	assert.Panics(t, func() { route.FromTree(parents, 5) })
	assert.Panics(t, func() { route.FromTree([]int{0, 2, 1}, 1) })
}

func TestDescend_PrefersDiagonals(t *testing.T) {
	g, _ := grid.New(3, 3)
	// 4-connected BFS labels from the seed (2,2)
	labels := []uint64{
		5, 4, 3,
		4, 3, 2,
		3, 2, 1,
	}
	path := route.Descend(g, labels, cell(0, 0))
	assert.Equal(t, grid.Path{cell(0, 0), cell(1, 1), cell(2, 2)}, path)
}

func TestDescend_Unlabeled(t *testing.T) {
	g, _ := grid.New(1, 2)
	assert.Empty(t, route.Descend(g, []uint64{0, 1}, cell(0, 0)))
}

func TestLength(t *testing.T) {
	assert.Equal(t, 0.0, route.Length(grid.Path{cell(0, 0)}))
	assert.InDelta(t, 1+math.Sqrt2, route.Length(grid.Path{cell(0, 0), cell(0, 1), cell(1, 2)}), 1e-9)
}

func TestSimplify_StraightRun(t *testing.T) {
	g, _ := grid.New(1, 6)
	p := grid.Path{cell(0, 0), cell(0, 1), cell(0, 2), cell(0, 3), cell(0, 4), cell(0, 5)}
	assert.Equal(t, grid.Path{cell(0, 0), cell(0, 5)}, route.Simplify(g, p, 0.5))
}

func TestSimplify_KeepsCornersAroundWalls(t *testing.T) {
	g, err := grid.Parse(
		"...",
		"##.",
		"...",
	)
	require.NoError(t, err)
	p := grid.Path{cell(0, 0), cell(0, 1), cell(0, 2), cell(1, 2), cell(2, 2), cell(2, 1), cell(2, 0)}

	// a huge epsilon would collapse everything without the line-of-sight guard
	out := route.Simplify(g, p, 100)
	require.GreaterOrEqual(t, len(out), 2)
	assert.Equal(t, p[0], out[0])
	assert.Equal(t, p[len(p)-1], out[len(out)-1])

	// subsequence with clear consecutive segments
	j := 0
	for _, c := range out {
		for j < len(p) && p[j] != c {
			j++
		}
		require.Less(t, j, len(p), "not a subsequence")
	}
	for i := 1; i < len(out); i++ {
		assert.True(t, g.LineOfSight(out[i-1], out[i]), "segment %v-%v", out[i-1], out[i])
	}
}

func TestSimplify_ShortPathsCopied(t *testing.T) {
	g, _ := grid.New(2, 2)
	p := grid.Path{cell(0, 0), cell(1, 1)}
	out := route.Simplify(g, p, 1)
	assert.Equal(t, p, out)
	out[0] = cell(1, 0)
	assert.Equal(t, cell(0, 0), p[0])
}
