package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"grid-planner/grid"
	"grid-planner/obstacles"
	"grid-planner/planner"
	"grid-planner/render"
)

// planFlags are shared by run and compare.
type planFlags struct {
	mapFile      string
	start, goal  string
	seed         int64
	connectivity int
	simplify     float64
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mapFile, "map", "", "Obstacle map JSON (default: map.file from the config; generated when missing)")
	cmd.Flags().StringVar(&f.start, "start", "0,0", "Start cell as row,col")
	cmd.Flags().StringVar(&f.goal, "goal", "", "Goal cell as row,col (default: bottom-right cell)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed (default: planner.seed from the config)")
	cmd.Flags().IntVar(&f.connectivity, "connectivity", 0, "4 or 8 (default: planner.connectivity from the config)")
	cmd.Flags().Float64Var(&f.simplify, "simplify", -1, "Simplify found paths with this epsilon; 0 disables (default: from the config)")
}

// prepare loads the map and builds tunables with flag overrides applied.
func (f *planFlags) prepare(cmd *cobra.Command, a *app) (*obstacles.Map, grid.Cell, grid.Cell, planner.Tunables, error) {
	t, err := planner.TunablesFrom(a.cfg.Planner)
	if err != nil {
		return nil, grid.Cell{}, grid.Cell{}, t, err
	}
	if cmd.Flags().Changed("seed") {
		t.Seed = f.seed
		a.cfg.Planner.Seed = f.seed
	}
	if f.connectivity != 0 {
		if t.Connectivity, err = grid.ParseConnectivity(f.connectivity); err != nil {
			return nil, grid.Cell{}, grid.Cell{}, t, err
		}
	}
	if f.simplify >= 0 {
		t.SimplifyEpsilon = f.simplify
	}

	path := f.mapFile
	if path == "" {
		path = a.cfg.Map.File
	}
	m, start, goal, err := a.loadMap(path, f.start, f.goal)
	return m, start, goal, t, err
}

func newRunCmd(a *app) *cobra.Command {
	var (
		flags     planFlags
		algorithm string
		pngOut    string
		treeOut   string
		scale     int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Plan one route and print it",
		Example: `  gridplan run --algorithm astar --start 0,0 --goal 99,99
  gridplan run --algorithm rrt-star --seed 7 --png route.png --tree tree.geojson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if algorithm == "" {
				algorithm = a.cfg.Planner.Algorithm
			}
			alg, err := planner.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			m, start, goal, t, err := flags.prepare(cmd, a)
			if err != nil {
				return err
			}
			g := m.Grid()

			out, err := planner.Run(cmd.Context(), g, start, goal, alg, t)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)

			if pngOut != "" {
				scene := render.Scene{
					Grid: g, Labels: out.Labels, Edges: out.Edges, Path: out.Path,
					Start: start, Goal: goal, Scale: scale,
				}
				if err := render.SavePNG(pngOut, scene); err != nil {
					return fmt.Errorf("render %s: %w", pngOut, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "image:   %s\n", pngOut)
			}
			if treeOut != "" {
				if out.Tree == nil {
					return fmt.Errorf("--tree needs a sampling planner, got %s", alg)
				}
				data, err := json.MarshalIndent(out.Tree.FeatureCollection(), "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(treeOut, data, 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "tree:    %s\n", treeOut)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "grassfire, astar, rrt or rrt-star (default: planner.algorithm from the config)")
	cmd.Flags().StringVar(&pngOut, "png", "", "Write a PNG rendering of the run")
	cmd.Flags().StringVar(&treeOut, "tree", "", "Write the sampling tree as GeoJSON")
	cmd.Flags().IntVar(&scale, "scale", 0, "Pixels per cell for --png (default: 5, or 1 above 200 cells)")
	return cmd
}

func printOutcome(w io.Writer, out *planner.Outcome) {
	fmt.Fprintf(w, "algorithm: %s\n", out.Algorithm)
	fmt.Fprintf(w, "status:    %s\n", out.Status)
	if out.Found() {
		fmt.Fprintf(w, "path:      %d waypoints, length %.2f\n", len(out.Path), out.Length)
	} else {
		fmt.Fprintf(w, "partial:   %d waypoints\n", len(out.Partial))
	}
	st := out.Stats
	switch out.Algorithm {
	case planner.Grassfire:
		fmt.Fprintf(w, "rounds:    %d\n", st.Rounds)
	case planner.AStar:
		fmt.Fprintf(w, "rounds:    %d, expanded %d\n", st.Rounds, st.Expanded)
	default:
		fmt.Fprintf(w, "tree:      %d/%d nodes, %d samples, found at %d\n", st.TreeSize, st.Budget, st.Samples, st.FoundAt)
	}
	fmt.Fprintf(w, "elapsed:   %v\n", out.Elapsed)
	if out.Found() {
		fmt.Fprintf(w, "route:     %v\n", out.Path)
	}
}
