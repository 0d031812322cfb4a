// Package config loads planner, map and service settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root of the YAML file.
type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	Map     MapConfig     `yaml:"map"`
	Server  ServerConfig  `yaml:"server"`
}

// PlannerConfig holds the tunables shared by all algorithms.
type PlannerConfig struct {
	Algorithm    string `yaml:"algorithm"`
	Connectivity int    `yaml:"connectivity"`
	Seed         int64  `yaml:"seed"`

	// SimplifyEpsilon enables line-of-sight path simplification when > 0.
	SimplifyEpsilon float64 `yaml:"simplify_epsilon"`

	Grassfire GrassfireConfig `yaml:"grassfire"`
	AStar     AStarConfig     `yaml:"astar"`
	RRT       RRTConfig       `yaml:"rrt"`
}

// GrassfireConfig selects the flood-fill variant. Hybrid always expands
// 4-connected regardless of Connectivity.
type GrassfireConfig struct {
	Sweep     bool `yaml:"sweep"`
	Hybrid    bool `yaml:"hybrid"`
	FullField bool `yaml:"full_field"`
}

// AStarConfig holds A* tunables.
type AStarConfig struct {
	CostScale int `yaml:"cost_scale"`
}

// RRTConfig holds the sampling planner tunables.
type RRTConfig struct {
	StepDistance  float64 `yaml:"step_distance"`
	MaxNodes      int     `yaml:"max_nodes"`
	RewireFactor  float64 `yaml:"rewire_factor"`
	CaptureRadius int     `yaml:"capture_radius"`
	MaxSamples    int     `yaml:"max_samples"`
}

// MapConfig describes random obstacle maps.
type MapConfig struct {
	Rows        int    `yaml:"rows"`
	Cols        int    `yaml:"cols"`
	Obstacles   int    `yaml:"obstacles"`
	MaxAttempts int    `yaml:"max_attempts"`
	File        string `yaml:"file"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	RenderScale int    `yaml:"render_scale"`
	// MaxArea rejects map builds larger than this many cells.
	MaxArea int `yaml:"max_area"`
	// MaxObstacles rejects map builds with more rectangles than this.
	MaxObstacles int `yaml:"max_obstacles"`
	// MaxRenderPixels rejects renderings larger than this many pixels.
	MaxRenderPixels int `yaml:"max_render_pixels"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			Algorithm:    "astar",
			Connectivity: 8,
			Seed:         1,
			AStar:        AStarConfig{CostScale: 10},
			RRT: RRTConfig{
				StepDistance:  10,
				MaxNodes:      16383,
				RewireFactor:  2,
				CaptureRadius: 5,
				MaxSamples:    2_000_000,
			},
		},
		Map: MapConfig{
			Rows:        100,
			Cols:        100,
			Obstacles:   60,
			MaxAttempts: 100,
			File:        "map.json",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			MaxArea:         4_000_000,
			MaxObstacles:    10_000,
			MaxRenderPixels: 16_000_000,
		},
	}
}

// Load reads path, overlays it on Default and validates the result.
// ${VAR} references in the file are replaced from the environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(interpolateEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithDefaults behaves like Load but returns Default when path does not exist.
func LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes cfg as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings no planner could run with.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	p := c.Planner
	if p.Connectivity != 4 && p.Connectivity != 8 {
		bad("planner.connectivity must be 4 or 8, got %d", p.Connectivity)
	}
	if p.SimplifyEpsilon < 0 {
		bad("planner.simplify_epsilon cannot be negative")
	}
	if p.AStar.CostScale <= 0 {
		bad("planner.astar.cost_scale must be positive")
	}
	if p.RRT.StepDistance <= 0 {
		bad("planner.rrt.step_distance must be positive")
	}
	if p.RRT.MaxNodes <= 0 {
		bad("planner.rrt.max_nodes must be positive")
	}
	if p.RRT.RewireFactor <= 0 {
		bad("planner.rrt.rewire_factor must be positive")
	}
	if p.RRT.CaptureRadius < 0 {
		bad("planner.rrt.capture_radius cannot be negative")
	}
	if p.RRT.MaxSamples < 0 {
		bad("planner.rrt.max_samples cannot be negative")
	}

	if c.Map.Rows <= 0 || c.Map.Cols <= 0 {
		bad("map size must be positive, got %dx%d", c.Map.Rows, c.Map.Cols)
	}
	if c.Map.Obstacles < 0 {
		bad("map.obstacles cannot be negative")
	}
	if c.Map.MaxAttempts <= 0 {
		bad("map.max_attempts must be positive")
	}
	if c.Server.MaxArea <= 0 {
		bad("server.max_area must be positive")
	}
	if c.Server.MaxObstacles < 0 {
		bad("server.max_obstacles cannot be negative")
	}
	if c.Server.MaxRenderPixels <= 0 {
		bad("server.max_render_pixels must be positive")
	}
	if c.Server.RenderScale < 0 {
		bad("server.render_scale cannot be negative")
	}
	return errors.Join(errs...)
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateEnv replaces ${VAR} with its value; unset variables are left as written.
func interpolateEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return match
	})
}
