package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/runner"
	"github.com/katalvlaran/pathviz/search"
)

type runFlags struct {
	algorithm string
	compare   []string
	all       bool
	asJSON    bool
	noRender  bool
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run [board]",
		Short: "Search a board and print the explored cells and path",
		Long: `Run one algorithm on a board and draw the result:
'o' marks explored cells and '*' the path.

The board is an ASCII file ('.' open, '#' wall, '~' water, 'S' source,
'D' destination), a .json layout, '-' for stdin, or omitted for the
default board. --compare or --all prints a side-by-side table instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			l, err := a.readLayout(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			snap, err := l.Build()
			if err != nil {
				return err
			}
			r := runner.New(runner.WithLogger(a.logger))
			out := cmd.OutOrStdout()

			if f.all || len(f.compare) > 0 {
				return runCompare(cmd.Context(), r, snap, l, f, out)
			}
			alg, err := search.ParseAlgorithm(f.algorithm)
			if err != nil {
				return err
			}
			res, err := r.Run(cmd.Context(), snap, l.Source, l.Destination, alg)
			if err != nil {
				return err
			}
			if f.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			if !f.noRender {
				fmt.Fprint(out, gridgraph.Render(snap, l.Source, l.Destination, res.Explored, res.Path))
			}
			fmt.Fprintf(out, "%s: %s, path %d, cost %d, expanded %d\n",
				alg, res.State, len(res.Path), res.Cost, len(res.Explored))
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "A*", "DFS, BFS, Greedy, Dijkstra or A*")
	cmd.Flags().StringSliceVar(&f.compare, "compare", nil, "algorithms to compare, comma separated")
	cmd.Flags().BoolVar(&f.all, "all", false, "compare every algorithm")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON instead of text")
	cmd.Flags().BoolVar(&f.noRender, "no-render", false, "omit the board drawing")

	return cmd
}

func runCompare(ctx context.Context, r *runner.Runner, snap *gridgraph.Snapshot, l gridgraph.Layout, f *runFlags, out io.Writer) error {
	var algs []search.Algorithm
	if !f.all {
		for _, name := range f.compare {
			alg, err := search.ParseAlgorithm(name)
			if err != nil {
				return err
			}
			algs = append(algs, alg)
		}
	}
	sums, err := r.Compare(ctx, snap, l.Source, l.Destination, algs)
	if err != nil {
		return err
	}
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sums)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tWEIGHTED\tSTATE\tPATH\tCOST\tEXPANDED")
	for _, s := range sums {
		weighted := "no"
		if s.Weighted {
			weighted = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n", s.Algorithm, weighted, s.State, s.PathLength, s.Cost, s.Expanded)
	}

	return tw.Flush()
}
