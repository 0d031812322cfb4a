package obstacles

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports the map as GeoJSON in grid coordinates
// (x = column, y = row). Each obstacle is a Polygon feature; the grid size is
// stored in the "rows" and "cols" members of the collection.
func (m *Map) FeatureCollection() *geojson.FeatureCollection {
	return m.featureCollection(m.Rects)
}

// RegionFeatureCollection is FeatureCollection restricted to the obstacles
// intersecting the cell range, as found by QueryRegion.
func (m *Map) RegionFeatureCollection(minRow, minCol, maxRow, maxCol int) *geojson.FeatureCollection {
	return m.featureCollection(m.QueryRegion(minRow, minCol, maxRow, maxCol))
}

func (m *Map) featureCollection(rects []Rect) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{"rows": m.Rows, "cols": m.Cols}
	for _, r := range rects {
		f := geojson.NewFeature(r.Bound().ToPolygon())
		f.Properties["row"] = r.Row
		f.Properties["col"] = r.Col
		f.Properties["height"] = r.Height
		f.Properties["width"] = r.Width
		fc.Append(f)
	}
	return fc
}

// FromFeatureCollection reads a map back from GeoJSON. Polygon and
// MultiPolygon features contribute the cells covering their bounding boxes;
// other geometries are ignored. rows and cols are used when the collection
// carries no size members.
func FromFeatureCollection(fc *geojson.FeatureCollection, rows, cols int) (*Map, error) {
	if fc.ExtraMembers != nil {
		rows = fc.ExtraMembers.MustInt("rows", rows)
		cols = fc.ExtraMembers.MustInt("cols", cols)
	}
	return NewMap(rows, cols, rectsFromFeatures(fc.Features))
}

func rectsFromFeatures(features []*geojson.Feature) []Rect {
	var rects []Rect
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			rects = append(rects, FromBound(g.Bound()))
		case orb.MultiPolygon:
			for _, p := range g {
				rects = append(rects, FromBound(p.Bound()))
			}
		case orb.Bound:
			rects = append(rects, FromBound(g))
		}
	}
	return rects
}

// LoadGeoJSONDir loads every *.geojson file in dir into one rows×cols map.
// Unreadable or malformed files are logged and skipped.
func LoadGeoJSONDir(dir string, rows, cols int) (*Map, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	log.Printf("Loading obstacles from %d GeoJSON files...\n", len(files))

	var all []Rect
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", file, err)
			continue
		}

		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s: %v\n", file, err)
			continue
		}

		rects := rectsFromFeatures(fc.Features)
		all = append(all, rects...)
		log.Printf("   ✅ Loaded %d obstacles from %s\n", len(rects), filepath.Base(file))
	}

	merged := RemoveContained(all)
	log.Printf("Total obstacles loaded: %d (removed %d contained)\n", len(merged), len(all)-len(merged))

	m, err := NewMap(rows, cols, merged)
	if err != nil {
		return nil, fmt.Errorf("build map from %s: %w", dir, err)
	}
	return m, nil
}
