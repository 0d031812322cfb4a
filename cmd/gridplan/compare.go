package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"grid-planner/planner"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		flags planFlags
		names []string
	)
	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Run several planners concurrently on the same map",
		Example: `  gridplan compare --algorithms grassfire,astar --goal 50,80`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var algs []planner.Algorithm
			for _, name := range names {
				alg, err := planner.ParseAlgorithm(name)
				if err != nil {
					return err
				}
				algs = append(algs, alg)
			}
			m, start, goal, t, err := flags.prepare(cmd, a)
			if err != nil {
				return err
			}

			outs, err := planner.Compare(cmd.Context(), m.Grid(), start, goal, algs, t)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ALGORITHM\tSTATUS\tWAYPOINTS\tLENGTH\tELAPSED")
			for _, out := range outs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%v\n",
					out.Algorithm, out.Status, len(out.Path), out.Length, out.Elapsed)
			}
			return tw.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&names, "algorithms", nil, "Comma-separated planners (default: all)")
	return cmd
}
