package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/grid"
	"grid-planner/render"
)

func rgba(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestEncodePNG(t *testing.T) {
	g, err := grid.Parse(
		"....",
		".#..",
		"....",
	)
	require.NoError(t, err)
	scene := render.Scene{
		Grid:  g,
		Path:  grid.Path{{Row: 0, Col: 0}, {Row: 0, Col: 3}, {Row: 2, Col: 3}},
		Start: grid.Cell{Row: 0, Col: 0},
		Goal:  grid.Cell{Row: 2, Col: 3},
		Scale: 4,
	}
	var buf bytes.Buffer
	require.NoError(t, render.EncodePNG(&buf, scene))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 12), img.Bounds())

	// sample cell centers
	at := func(r, c int) color.RGBA { return rgba(img, c*4+2, r*4+2) }
	assert.Equal(t, render.StartColor, at(0, 0))
	assert.Equal(t, render.GoalColor, at(2, 3))
	assert.Equal(t, render.WallColor, at(1, 1))
	assert.Equal(t, render.PathColor, at(0, 2), "waypoints are joined by their line")
	assert.Equal(t, render.PathColor, at(1, 3))
	assert.Equal(t, render.FreeColor, at(2, 0))
}

func TestDraw_Labels(t *testing.T) {
	g, _ := grid.New(1, 3)
	dc, err := render.Draw(render.Scene{
		Grid:   g,
		Labels: []uint64{3, 0, 1},
		Start:  grid.Cell{Row: 0, Col: 2},
		Goal:   grid.Cell{Row: 0, Col: 2},
		Scale:  2,
	})
	require.NoError(t, err)
	img := dc.Image()
	assert.Equal(t, render.LabelColor(3, 3), rgba(img, 1, 1))
	assert.Equal(t, render.FreeColor, rgba(img, 3, 1))
	assert.Equal(t, color.RGBA{255, 0, 28, 255}, render.LabelColor(3, 3))
}

func TestSavePNG(t *testing.T) {
	g, _ := grid.New(10, 10)
	file := filepath.Join(t.TempDir(), "tree.png")
	err := render.SavePNG(file, render.Scene{
		Grid:  g,
		Edges: []grid.Edge{{From: grid.Cell{Row: 0, Col: 0}, To: grid.Cell{Row: 9, Col: 9}}},
		Start: grid.Cell{Row: 0, Col: 0},
		Goal:  grid.Cell{Row: 9, Col: 9},
	})
	require.NoError(t, err)
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestDraw_NoGrid(t *testing.T) {
	_, err := render.Draw(render.Scene{})
	assert.ErrorIs(t, err, render.ErrNoGrid)
}

func TestDefaultScale(t *testing.T) {
	assert.Equal(t, 5, render.DefaultScale(100, 200))
	assert.Equal(t, 1, render.DefaultScale(201, 10))
}
