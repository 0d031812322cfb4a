package rrt

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"grid-planner/grid"
	"grid-planner/route"
)

// Tree is a parent-indexed arena of nodes rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func newTree(root grid.Cell, capacity int) *Tree {
	t := &Tree{Nodes: make([]Node, 0, capacity)}
	t.Nodes = append(t.Nodes, Node{Pos: root, Parent: 0})
	return t
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.Nodes) }

// Parents returns the parent index of every node.
func (t *Tree) Parents() []int {
	parents := make([]int, len(t.Nodes))
	for i, n := range t.Nodes {
		parents[i] = n.Parent
	}
	return parents
}

// PathTo returns the positions from the root to node i.
func (t *Tree) PathTo(i int) grid.Path {
	chain := route.FromTree(t.Parents(), i)
	path := make(grid.Path, len(chain))
	for k, idx := range chain {
		path[k] = t.Nodes[idx].Pos
	}
	return path
}

// Find returns the index of the first node at c, or -1.
func (t *Tree) Find(c grid.Cell) int {
	for i, n := range t.Nodes {
		if n.Pos == c {
			return i
		}
	}
	return -1
}

// Nearest returns the node closest to c and its distance. Ties keep the lowest index.
func (t *Tree) Nearest(c grid.Cell) (int, float64) {
	if len(t.Nodes) == 0 {
		return -1, math.MaxFloat64
	}
	nearest := 0
	minDist := distance(c, t.Nodes[0].Pos)
	for i := 1; i < len(t.Nodes); i++ {
		if d := distance(c, t.Nodes[i].Pos); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest, minDist
}

// Edges returns every parent→child connection. The root's self-link is skipped.
func (t *Tree) Edges() []grid.Edge {
	edges := make([]grid.Edge, 0, len(t.Nodes))
	for i, n := range t.Nodes {
		if n.Parent == i {
			continue
		}
		edges = append(edges, grid.Edge{From: t.Nodes[n.Parent].Pos, To: n.Pos})
	}
	return edges
}

// LineStrings returns the edges as two-point line strings for visualization.
func (t *Tree) LineStrings() []orb.LineString {
	edges := t.Edges()
	lines := make([]orb.LineString, len(edges))
	for i, e := range edges {
		lines[i] = orb.LineString{route.Point(e.From), route.Point(e.To)}
	}
	return lines
}

// FeatureCollection exports the tree as GeoJSON: one LineString per edge with
// the child's index and root distance as properties, plus the root as a Point.
func (t *Tree) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(t.Nodes) == 0 {
		return fc
	}
	root := geojson.NewFeature(route.Point(t.Nodes[0].Pos))
	root.Properties["role"] = "root"
	fc.Append(root)
	for i, n := range t.Nodes {
		if n.Parent == i {
			continue
		}
		f := geojson.NewFeature(orb.LineString{route.Point(t.Nodes[n.Parent].Pos), route.Point(n.Pos)})
		f.Properties["node"] = i
		f.Properties["parent"] = n.Parent
		f.Properties["distance"] = n.Distance
		fc.Append(f)
	}
	return fc
}
