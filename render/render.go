// Package render draws occupancy grids, label fields, paths and sampling
// trees to PNG images.
package render

import (
	"errors"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"grid-planner/grid"
)

// ErrNoGrid is returned when a Scene has no grid to draw.
var ErrNoGrid = errors.New("render: scene has no grid")

// Palette.
var (
	WallColor  = color.RGBA{0, 0, 80, 255}
	FreeColor  = color.RGBA{255, 255, 255, 255}
	PathColor  = color.RGBA{192, 243, 173, 255}
	StartColor = color.RGBA{0, 221, 255, 255}
	GoalColor  = color.RGBA{0, 255, 47, 255}
	TreeColor  = color.RGBA{120, 120, 120, 255}
)

// Scene is everything drawn into one image. Only Grid is required.
type Scene struct {
	Grid *grid.OccupancyGrid

	// Labels per flat index; nonzero labels are shaded by value.
	Labels []uint64

	// Edges of a sampling tree, drawn as thin lines.
	Edges []grid.Edge

	// Path waypoints; consecutive waypoints are joined by their rasterized line.
	Path grid.Path

	Start, Goal grid.Cell

	// Scale is the side of one cell in pixels; DefaultScale when <= 0.
	Scale int
}

// DefaultScale uses 5 px per cell, or 1 px for grids larger than 200 in either direction.
func DefaultScale(rows, cols int) int {
	if rows > 200 || cols > 200 {
		return 1
	}
	return 5
}

// LabelColor shades a label between black-ish and red relative to maxLabel.
func LabelColor(label, maxLabel uint64) color.RGBA {
	if maxLabel == 0 {
		maxLabel = 1
	}
	return color.RGBA{uint8(label * 255 / maxLabel), 0, 28, 255}
}

// Draw renders the scene into a new drawing context.
func Draw(s Scene) (*gg.Context, error) {
	g := s.Grid
	if g == nil {
		return nil, ErrNoGrid
	}
	scale := s.Scale
	if scale <= 0 {
		scale = DefaultScale(g.Rows, g.Cols)
	}
	px := float64(scale)

	dc := gg.NewContext(g.Cols*scale, g.Rows*scale)
	dc.SetColor(FreeColor)
	dc.Clear()

	fill := func(c grid.Cell, col color.Color) {
		dc.SetColor(col)
		dc.DrawRectangle(float64(c.Col)*px, float64(c.Row)*px, px, px)
		dc.Fill()
	}

	var maxLabel uint64
	for _, l := range s.Labels {
		maxLabel = max(maxLabel, l)
	}

	// Fill the area
	for i := 0; i < g.Area(); i++ {
		c := g.CellAt(i)
		switch {
		case g.BlockedAt(i):
			fill(c, WallColor)
		case i < len(s.Labels) && s.Labels[i] != 0:
			fill(c, LabelColor(s.Labels[i], maxLabel))
		}
	}

	// Tree edges between cell centers
	if len(s.Edges) > 0 {
		dc.SetColor(TreeColor)
		dc.SetLineWidth(1)
		for _, e := range s.Edges {
			dc.DrawLine(
				(float64(e.From.Col)+0.5)*px, (float64(e.From.Row)+0.5)*px,
				(float64(e.To.Col)+0.5)*px, (float64(e.To.Row)+0.5)*px,
			)
			dc.Stroke()
		}
	}

	// Path
	for i, c := range s.Path {
		if i == 0 {
			fill(c, PathColor)
			continue
		}
		for _, on := range grid.Line(s.Path[i-1], c) {
			fill(on, PathColor)
		}
	}

	fill(s.Start, StartColor)
	fill(s.Goal, GoalColor)
	return dc, nil
}

// EncodePNG renders the scene and writes it to w as PNG.
func EncodePNG(w io.Writer, s Scene) error {
	dc, err := Draw(s)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders the scene to a PNG file.
func SavePNG(path string, s Scene) error {
	dc, err := Draw(s)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}
