package obstacles

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// mapFile is the on-disk layout of a Map.
type mapFile struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Rects []Rect `json:"rects"`
}

// MarshalJSON encodes the grid size and the rectangles.
func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(mapFile{Rows: m.Rows, Cols: m.Cols, Rects: m.Rects})
}

// UnmarshalJSON decodes and re-indexes a map.
func (m *Map) UnmarshalJSON(data []byte) error {
	var f mapFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	loaded, err := NewMap(f.Rows, f.Cols, f.Rects)
	if err != nil {
		return err
	}
	*m = *loaded
	return nil
}

// Save serializes the map to a JSON file.
func Save(m *Map, filename string) error {
	log.Printf("💾 Saving obstacle map to %s...\n", filename)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal map: %w", err)
	}

	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Map saved (%d bytes)\n", len(data))
	return nil
}

// Load reads a map written by Save.
func Load(filename string) (*Map, error) {
	log.Printf("📂 Loading obstacle map from %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var m Map
	err = json.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal map: %w", err)
	}

	log.Printf("   ✅ Map loaded: %dx%d, %d obstacles\n", m.Rows, m.Cols, m.Len())
	return &m, nil
}
