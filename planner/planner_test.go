package planner_test

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/config"
	"grid-planner/grid"
	"grid-planner/obstacles"
	"grid-planner/planner"
)

func cell(r, c int) grid.Cell { return grid.Cell{Row: r, Col: c} }

func wallGrid(t *testing.T) *grid.OccupancyGrid {
	t.Helper()
	g, err := grid.Parse(
		"..#..",
		"..#..",
		"..#..",
		"..#..",
	)
	require.NoError(t, err)
	return g
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]planner.Algorithm{
		"grassfire": planner.Grassfire,
		"A*":        planner.AStar,
		" astar ":   planner.AStar,
		"rrt":       planner.RRT,
		"RRT*":      planner.RRTStar,
		"rrt-star":  planner.RRTStar,
	} {
		got, err := planner.ParseAlgorithm(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := planner.ParseAlgorithm("dijkstra")
	assert.ErrorIs(t, err, planner.ErrUnknownAlgorithm)
}

func TestTunablesFrom(t *testing.T) {
	cfg := config.Default().Planner
	cfg.Connectivity = 4
	cfg.Grassfire.Sweep = true
	tun, err := planner.TunablesFrom(cfg)
	require.NoError(t, err)
	assert.Equal(t, grid.Conn4, tun.Connectivity)
	assert.True(t, tun.Sweep)
	assert.Equal(t, 10, tun.CostScale)

	cfg.Connectivity = 5
	_, err = planner.TunablesFrom(cfg)
	assert.Error(t, err)
}

func TestRun_AllAlgorithmsFindPath(t *testing.T) {
	g, _ := grid.New(40, 40)
	start, goal := cell(0, 0), cell(39, 39)
	for _, alg := range planner.Algorithms {
		out, err := planner.Run(context.Background(), g, start, goal, alg, planner.DefaultTunables())
		require.NoError(t, err, alg)
		assert.True(t, out.Found(), alg)
		assert.Equal(t, start, out.Path[0], alg)
		assert.Equal(t, goal, out.Path[len(out.Path)-1], alg)
		assert.Positive(t, out.Length, alg)
	}
}

func TestRun_OutcomeDetails(t *testing.T) {
	g, _ := grid.New(10, 10)
	tun := planner.DefaultTunables()

	gf, err := planner.Run(context.Background(), g, cell(0, 0), cell(4, 4), planner.Grassfire, tun)
	require.NoError(t, err)
	assert.Len(t, gf.Path, 5)
	assert.Len(t, gf.Labels, 100)
	assert.Nil(t, gf.Tree)

	rt, err := planner.Run(context.Background(), g, cell(0, 0), cell(9, 9), planner.RRT, tun)
	require.NoError(t, err)
	require.NotNil(t, rt.Tree)
	assert.Len(t, rt.Edges, rt.Tree.Len()-1)
	assert.Equal(t, rt.Tree.Len(), rt.Stats.TreeSize)
	assert.Positive(t, rt.Stats.Samples)
}

func TestRun_FoldsFailures(t *testing.T) {
	g := wallGrid(t)
	tun := planner.DefaultTunables()
	tun.MaxSamples = 5000

	out, err := planner.Run(context.Background(), g, cell(0, 0), cell(3, 4), planner.Grassfire, tun)
	require.NoError(t, err)
	assert.Equal(t, grid.StatusUnreachable, out.Status)
	assert.Empty(t, out.Path)

	out, err = planner.Run(context.Background(), g, cell(0, 0), cell(3, 4), planner.AStar, tun)
	require.NoError(t, err)
	assert.Equal(t, grid.StatusUnreachable, out.Status)
	assert.Empty(t, out.Path)
	assert.Zero(t, out.Length)
	require.NotEmpty(t, out.Partial)
	assert.Equal(t, cell(0, 0), out.Partial[0])

	for _, alg := range []planner.Algorithm{planner.RRT, planner.RRTStar} {
		out, err = planner.Run(context.Background(), g, cell(0, 0), cell(3, 4), alg, tun)
		require.NoError(t, err)
		assert.Equal(t, grid.StatusResourceExhausted, out.Status, alg)
		assert.Empty(t, out.Path, alg)
		assert.Zero(t, out.Length, alg)
		require.NotEmpty(t, out.Partial, alg)
		assert.Equal(t, cell(0, 0), out.Partial[0], alg)
	}
}

func TestRun_Errors(t *testing.T) {
	g := wallGrid(t)
	ctx := context.Background()
	tun := planner.DefaultTunables()

	_, err := planner.Run(ctx, g, cell(0, 2), cell(3, 4), planner.AStar, tun)
	assert.ErrorIs(t, err, grid.ErrInvalidInput)

	_, err = planner.Run(ctx, g, cell(0, 0), cell(3, 4), planner.Algorithm("bfs"), tun)
	assert.ErrorIs(t, err, planner.ErrUnknownAlgorithm)

	bad := tun
	bad.StepDistance = 0
	_, err = planner.Run(ctx, g, cell(0, 0), cell(3, 4), planner.RRT, bad)
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = planner.Run(cancelled, g, cell(0, 0), cell(3, 4), planner.AStar, tun)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Simplify(t *testing.T) {
	g, _ := grid.New(20, 20)
	tun := planner.DefaultTunables()
	tun.Connectivity = grid.Conn4
	tun.SimplifyEpsilon = 0.5

	out, err := planner.Run(context.Background(), g, cell(0, 0), cell(0, 19), planner.Grassfire, tun)
	require.NoError(t, err)
	assert.Equal(t, grid.Path{cell(0, 0), cell(0, 19)}, out.Path)
	assert.Equal(t, 19.0, out.Length)
}

func TestRun_HybridIgnoresConn8(t *testing.T) {
	g, _ := grid.New(5, 5)
	tun := planner.DefaultTunables()
	tun.Hybrid = true
	out, err := planner.Run(context.Background(), g, cell(0, 0), cell(4, 4), planner.Grassfire, tun)
	require.NoError(t, err)
	assert.Len(t, out.Path, 5)
}

func TestCompare_MatchesRun(t *testing.T) {
	m, err := obstacles.Generate(60, 60, 40, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	g := m.Grid()
	start, goal := cell(0, 0), cell(59, 59)
	g.SetBlocked(start, false)
	g.SetBlocked(goal, false)

	tun := planner.DefaultTunables()
	tun.MaxSamples = 100000
	outs, err := planner.Compare(context.Background(), g, start, goal, nil, tun)
	require.NoError(t, err)
	require.Len(t, outs, len(planner.Algorithms))

	for i, alg := range planner.Algorithms {
		assert.Equal(t, alg, outs[i].Algorithm)
		seq, err := planner.Run(context.Background(), g, start, goal, alg, tun)
		require.NoError(t, err)
		assert.Equal(t, seq.Status, outs[i].Status, alg)
		assert.Equal(t, seq.Path, outs[i].Path, alg)
	}
}

func TestCompare_InvalidInput(t *testing.T) {
	g := wallGrid(t)
	_, err := planner.Compare(context.Background(), g, cell(0, 0), cell(9, 9),
		[]planner.Algorithm{planner.AStar}, planner.DefaultTunables())
	assert.ErrorIs(t, err, grid.ErrInvalidInput)
}

func TestOutcome_JSON(t *testing.T) {
	g, _ := grid.New(3, 3)
	out, err := planner.Run(context.Background(), g, cell(0, 0), cell(2, 2), planner.AStar, planner.DefaultTunables())
	require.NoError(t, err)
	data, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "astar", decoded["algorithm"])
	assert.Equal(t, "success", decoded["status"])
	assert.NotContains(t, decoded, "Labels")
	assert.NotContains(t, decoded, "partial")
}
