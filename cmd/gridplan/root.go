package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"grid-planner/config"
	"grid-planner/grid"
	"grid-planner/obstacles"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "gridplan",
		Short: "Grid path planning with flood fill, A* and RRT",
		Long: `gridplan plans collision-free routes on 2-D occupancy grids.

Maps are rectangles of blocked cells, generated at random or loaded from
JSON. Routes can be planned with grassfire flood fill, batched A*, RRT or
RRT*, compared side by side, rendered to PNG and served over HTTP.`,
		PersistentPreRunE: a.loadConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "gridplan.yaml", "Path to the YAML config file")

	root.AddCommand(
		newRunCmd(a),
		newCompareCmd(a),
		newGenerateCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return newRootCmd().ExecuteContext(ctx)
}

// loadConfig is called before any command runs
func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithDefaults(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// parseCell reads "row,col".
func parseCell(s string) (grid.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return grid.Cell{}, fmt.Errorf("cell %q must be row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	return grid.Cell{Row: row, Col: col}, nil
}

// endpoints parses --start and --goal. An empty goal defaults to the
// bottom-right cell of a rows×cols map.
func endpoints(start, goal string, rows, cols int) (grid.Cell, grid.Cell, error) {
	s, err := parseCell(start)
	if err != nil {
		return s, s, err
	}
	if goal == "" {
		return s, grid.Cell{Row: rows - 1, Col: cols - 1}, nil
	}
	g, err := parseCell(goal)
	return s, g, err
}

// loadMap reads path when it exists and otherwise generates a map from the
// config that keeps start and goal free. An empty goal means the bottom-right
// cell of the map.
func (a *app) loadMap(path, start, goal string) (*obstacles.Map, grid.Cell, grid.Cell, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			m, err := obstacles.Load(path)
			if err != nil {
				return nil, grid.Cell{}, grid.Cell{}, err
			}
			s, g, err := endpoints(start, goal, m.Rows, m.Cols)
			return m, s, g, err
		}
	}

	mc := a.cfg.Map
	s, g, err := endpoints(start, goal, mc.Rows, mc.Cols)
	if err != nil {
		return nil, s, g, err
	}
	rng := rand.New(rand.NewSource(a.cfg.Planner.Seed))
	m, _, err := obstacles.GenerateValid(mc.Rows, mc.Cols, mc.Obstacles, s, g, rng, mc.MaxAttempts)
	return m, s, g, err
}
