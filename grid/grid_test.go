package grid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/grid"
)

func TestNew_Empty(t *testing.T) {
	_, err := grid.New(0, 3)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)
	_, err = grid.FromRows(nil)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)
}

func TestFromRows_NonRectangular(t *testing.T) {
	_, err := grid.FromRows([][]bool{{false, true}, {false}})
	assert.ErrorIs(t, err, grid.ErrNonRectangular)
}

func TestParse(t *testing.T) {
	g, err := grid.Parse(
		"..#",
		"#..",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows)
	assert.Equal(t, 3, g.Cols)
	assert.True(t, g.IsBlocked(grid.Cell{Row: 0, Col: 2}))
	assert.True(t, g.IsBlocked(grid.Cell{Row: 1, Col: 0}))
	assert.False(t, g.IsBlocked(grid.Cell{Row: 1, Col: 1}))
	assert.Equal(t, 2, g.BlockedCount())
	assert.Equal(t, "..#\n#..\n", g.String())
}

func TestParse_MultiByteRunes(t *testing.T) {
	g, err := grid.Parse(
		"·#·",
		"..#",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Cols)
	assert.True(t, g.IsBlocked(grid.Cell{Row: 0, Col: 1}))
	assert.False(t, g.IsBlocked(grid.Cell{Row: 0, Col: 2}))
	assert.Equal(t, 2, g.BlockedCount())
}

func TestIsBlocked_OutOfBounds(t *testing.T) {
	g, _ := grid.New(2, 2)
	assert.True(t, g.IsBlocked(grid.Cell{Row: -1, Col: 0}))
	assert.True(t, g.IsBlocked(grid.Cell{Row: 0, Col: 2}))
}

func TestNeighbors_InBoundsOnly(t *testing.T) {
	g, _ := grid.New(3, 3)

	corner := grid.Cell{Row: 0, Col: 0}
	assert.Equal(t, []grid.Cell{{Row: 1, Col: 0}, {Row: 0, Col: 1}}, g.Neighbors4(corner))
	assert.Equal(t, []grid.Cell{{Row: 1, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: 1}}, g.Neighbors8(corner))

	center := grid.Cell{Row: 1, Col: 1}
	assert.Len(t, g.Neighbors4(center), 4)
	n8 := g.Neighbors8(center)
	require.Len(t, n8, 8)
	// diagonals come first
	assert.Equal(t, grid.Cell{Row: 2, Col: 2}, n8[0])
	assert.Equal(t, grid.Cell{Row: 2, Col: 1}, n8[4])
}

func TestIndexRoundTrip(t *testing.T) {
	g, _ := grid.New(4, 7)
	for i := 0; i < g.Area(); i++ {
		assert.Equal(t, i, g.Index(g.CellAt(i)))
	}
}

func TestValidate(t *testing.T) {
	g, _ := grid.Parse(
		"...",
		".#.",
	)
	assert.NoError(t, g.Validate(grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 1, Col: 2}))

	err := g.Validate(grid.Cell{Row: 5, Col: 0}, grid.Cell{Row: 1, Col: 2})
	assert.ErrorIs(t, err, grid.ErrInvalidInput)

	err = g.Validate(grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 1, Col: 1})
	assert.ErrorIs(t, err, grid.ErrInvalidInput)
	assert.Contains(t, err.Error(), "goal")
}

func TestClone_Independent(t *testing.T) {
	g, _ := grid.New(2, 2)
	cp := g.Clone()
	cp.SetBlocked(grid.Cell{Row: 0, Col: 0}, true)
	assert.False(t, g.IsBlocked(grid.Cell{Row: 0, Col: 0}))
	assert.True(t, cp.IsBlocked(grid.Cell{Row: 0, Col: 0}))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "unreachable", grid.StatusUnreachable.String())
	assert.Nil(t, grid.StatusSuccess.Err())
	assert.True(t, errors.Is(grid.StatusResourceExhausted.Err(), grid.ErrResourceExhausted))
	assert.Equal(t, grid.StatusUnreachable, grid.StatusOf(grid.ErrUnreachable))
	assert.Equal(t, grid.StatusSuccess, grid.StatusOf(nil))

	text, err := grid.StatusResourceExhausted.MarshalText()
	require.NoError(t, err)
	var back grid.Status
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, grid.StatusResourceExhausted, back)
	assert.Error(t, back.UnmarshalText([]byte("lost")))
}

func TestParseConnectivity(t *testing.T) {
	c, err := grid.ParseConnectivity(8)
	require.NoError(t, err)
	assert.Equal(t, grid.Conn8, c)
	_, err = grid.ParseConnectivity(6)
	assert.Error(t, err)
}
