package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"grid-planner/grid"
	"grid-planner/obstacles"
	"grid-planner/render"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		rows, cols, count int
		seed              int64
		start, goal       string
		fromDir           string
		out               string
		geojsonOut        string
		pngOut            string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an obstacle map and save it as JSON",
		Long: `Generate places random rectangles on a rows×cols grid. With --start and
--goal it retries until both cells are free. With --from-geojson it instead
reads every *.geojson file of a directory, one rectangle per polygon.`,
		Example: `  gridplan generate --rows 200 --cols 300 --obstacles 400 --seed 3 --out map.json
  gridplan generate --from-geojson zones/ --rows 500 --cols 500 --png map.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mc := a.cfg.Map
			if !cmd.Flags().Changed("rows") {
				rows = mc.Rows
			}
			if !cmd.Flags().Changed("cols") {
				cols = mc.Cols
			}
			if !cmd.Flags().Changed("obstacles") {
				count = mc.Obstacles
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Planner.Seed
			}
			if out == "" {
				out = mc.File
			}

			var (
				m        *obstacles.Map
				attempts = 1
				err      error
				s, g     grid.Cell
			)
			rng := rand.New(rand.NewSource(seed))
			switch {
			case fromDir != "":
				m, err = obstacles.LoadGeoJSONDir(fromDir, rows, cols)
			case start != "" || goal != "":
				if start == "" {
					start = "0,0"
				}
				if s, g, err = endpoints(start, goal, rows, cols); err != nil {
					return err
				}
				m, attempts, err = obstacles.GenerateValid(rows, cols, count, s, g, rng, mc.MaxAttempts)
			default:
				m, err = obstacles.Generate(rows, cols, count, rng)
			}
			if err != nil {
				return err
			}

			if err := obstacles.Save(m, out); err != nil {
				return err
			}
			blocked := m.Grid().BlockedCount()
			fmt.Fprintf(cmd.OutOrStdout(), "map:       %s (%dx%d, %d obstacles, %d blocked cells, %d attempts)\n",
				out, m.Rows, m.Cols, m.Len(), blocked, attempts)

			if geojsonOut != "" {
				data, err := json.MarshalIndent(m.FeatureCollection(), "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(geojsonOut, data, 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "geojson:   %s\n", geojsonOut)
			}
			if pngOut != "" {
				if err := render.SavePNG(pngOut, render.Scene{Grid: m.Grid(), Start: s, Goal: g}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "image:     %s\n", pngOut)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "Grid rows (default: map.rows from the config)")
	cmd.Flags().IntVar(&cols, "cols", 0, "Grid columns (default: map.cols from the config)")
	cmd.Flags().IntVar(&count, "obstacles", 0, "Number of random rectangles (default: map.obstacles from the config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: planner.seed from the config)")
	cmd.Flags().StringVar(&start, "start", "", "Cell to keep free, as row,col")
	cmd.Flags().StringVar(&goal, "goal", "", "Cell to keep free, as row,col (default with --start: bottom-right cell)")
	cmd.Flags().StringVar(&fromDir, "from-geojson", "", "Read obstacles from the *.geojson files of this directory")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output JSON file (default: map.file from the config)")
	cmd.Flags().StringVar(&geojsonOut, "geojson", "", "Also write the map as GeoJSON")
	cmd.Flags().StringVar(&pngOut, "png", "", "Also write a PNG rendering")
	return cmd
}
