package obstacles_test

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/grid"
	"grid-planner/obstacles"
)

func cell(r, c int) grid.Cell { return grid.Cell{Row: r, Col: c} }

func TestNewMap_ClipsAndDropsEmpty(t *testing.T) {
	m, err := obstacles.NewMap(10, 10, []obstacles.Rect{
		{Row: 8, Col: 8, Height: 5, Width: 5},
		{Row: 2, Col: 2, Height: 0, Width: 3},
		{Row: 20, Col: 20, Height: 2, Width: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []obstacles.Rect{{Row: 8, Col: 8, Height: 2, Width: 2}}, m.Rects)

	_, err = obstacles.NewMap(0, 10, nil)
	assert.ErrorIs(t, err, obstacles.ErrEmptyMap)
}

func TestMap_CoversMatchesGrid(t *testing.T) {
	m, err := obstacles.NewMap(12, 15, []obstacles.Rect{
		{Row: 1, Col: 1, Height: 3, Width: 2},
		{Row: 5, Col: 7, Height: 4, Width: 6},
		{Row: 10, Col: 0, Height: 2, Width: 15},
	})
	require.NoError(t, err)
	g := m.Grid()
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			assert.Equal(t, g.IsBlocked(cell(r, c)), m.Covers(cell(r, c)), "cell %v", cell(r, c))
		}
	}
	assert.True(t, m.Covers(cell(-1, 0)))
	assert.Equal(t, 6+24+30, g.BlockedCount())
}

func TestMap_QueryRegion(t *testing.T) {
	m, _ := obstacles.NewMap(20, 20, []obstacles.Rect{
		{Row: 0, Col: 0, Height: 2, Width: 2},
		{Row: 10, Col: 10, Height: 3, Width: 3},
	})
	assert.Len(t, m.QueryRegion(0, 0, 5, 5), 1)
	assert.Len(t, m.QueryRegion(0, 0, 19, 19), 2)
	assert.Empty(t, m.QueryRegion(2, 2, 9, 9))
	// inclusive bounds touch the second rectangle's corner cell
	assert.Len(t, m.QueryRegion(5, 5, 10, 10), 1)
	assert.Empty(t, m.QueryRegion(5, 5, 4, 4))
}

func TestGenerate_Reproducible(t *testing.T) {
	a, err := obstacles.Generate(50, 60, 40, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	b, err := obstacles.Generate(50, 60, 40, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	assert.Equal(t, a.Rects, b.Rects)
	for _, r := range a.Rects {
		assert.Less(t, r.Height, 5)
		assert.Less(t, r.Width, 6)
		assert.False(t, r.Empty())
	}
}

func TestGenerate_SmallGridHasNoObstacles(t *testing.T) {
	m, err := obstacles.Generate(9, 40, 100, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Zero(t, m.Len())
}

func TestGenerate_NegativeCount(t *testing.T) {
	_, err := obstacles.Generate(20, 20, -1, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, obstacles.ErrNegativeCount)

	_, _, err = obstacles.GenerateValid(20, 20, -1, cell(0, 0), cell(19, 19), rand.New(rand.NewSource(1)), 3)
	assert.ErrorIs(t, err, obstacles.ErrNegativeCount)
}

func TestGenerateValid_KeepsEndpointsFree(t *testing.T) {
	start, goal := cell(0, 0), cell(49, 49)
	for seed := int64(0); seed < 10; seed++ {
		m, attempts, err := obstacles.GenerateValid(50, 50, 200, start, goal, rand.New(rand.NewSource(seed)), 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, attempts, 1)
		g := m.Grid()
		assert.False(t, g.IsBlocked(start))
		assert.False(t, g.IsBlocked(goal))
	}
}

func TestGenerateValid_GivesUp(t *testing.T) {
	// the goal is outside the map, so every layout covers it
	_, attempts, err := obstacles.GenerateValid(20, 20, 5, cell(0, 0), cell(30, 30), rand.New(rand.NewSource(1)), 3)
	assert.ErrorIs(t, err, obstacles.ErrNoValidMap)
	assert.Equal(t, 3, attempts)
}

func TestRemoveContained(t *testing.T) {
	big := obstacles.Rect{Row: 0, Col: 0, Height: 10, Width: 10}
	inner := obstacles.Rect{Row: 2, Col: 2, Height: 3, Width: 3}
	other := obstacles.Rect{Row: 8, Col: 8, Height: 5, Width: 5}
	got := obstacles.RemoveContained([]obstacles.Rect{inner, big, other, big, {Height: 0, Width: 4}})
	assert.Equal(t, []obstacles.Rect{big, other}, got)
}

func TestRect_FromBound(t *testing.T) {
	b := orb.Bound{Min: orb.Point{1.5, 2.2}, Max: orb.Point{4, 3.1}}
	assert.Equal(t, obstacles.Rect{Row: 2, Col: 1, Height: 2, Width: 3}, obstacles.FromBound(b))
	r := obstacles.Rect{Row: 3, Col: 4, Height: 2, Width: 6}
	assert.Equal(t, r, obstacles.FromBound(r.Bound()))
}

func TestGeoJSONRoundTrip(t *testing.T) {
	m, _ := obstacles.NewMap(30, 40, []obstacles.Rect{
		{Row: 1, Col: 2, Height: 3, Width: 4},
		{Row: 10, Col: 20, Height: 5, Width: 1},
	})
	data, err := json.Marshal(m.FeatureCollection())
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	back, err := obstacles.FromFeatureCollection(fc, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, back.Rows)
	assert.Equal(t, 40, back.Cols)
	assert.Equal(t, m.Rects, back.Rects)
}

func TestLoadGeoJSONDir(t *testing.T) {
	dir := t.TempDir()
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(obstacles.Rect{Row: 0, Col: 0, Height: 4, Width: 4}.Bound().ToPolygon()))
	fc.Append(geojson.NewFeature(orb.MultiPolygon{
		obstacles.Rect{Row: 1, Col: 1, Height: 2, Width: 2}.Bound().ToPolygon(),
		obstacles.Rect{Row: 6, Col: 6, Height: 2, Width: 2}.Bound().ToPolygon(),
	}))
	fc.Append(geojson.NewFeature(orb.Point{3, 3}))
	data, err := json.Marshal(fc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.geojson"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.geojson"), []byte("{"), 0o644))

	m, err := obstacles.LoadGeoJSONDir(dir, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, []obstacles.Rect{
		{Row: 0, Col: 0, Height: 4, Width: 4},
		{Row: 6, Col: 6, Height: 2, Width: 2},
	}, m.Rects)
}

func TestSaveLoad(t *testing.T) {
	m, err := obstacles.Generate(40, 40, 30, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, obstacles.Save(m, file))

	back, err := obstacles.Load(file)
	require.NoError(t, err)
	assert.Equal(t, m.Rects, back.Rects)
	assert.Equal(t, m.Grid().String(), back.Grid().String())
	assert.Equal(t, m.Covers(cell(5, 5)), back.Covers(cell(5, 5)))

	_, err = obstacles.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
