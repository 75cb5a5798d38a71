package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/maze"
)

func newMazeCmd(a *app) *cobra.Command {
	var (
		rows, cols int
		seed       uint64
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Generate a maze on the default board",
		Long: `Carve a maze from the source with a randomized recursive backtracker
and print it as ASCII (usable as input to 'pathviz run') or as a JSON layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := a.cfg.Board.Layout()
			if rows > 0 {
				l.Rows = rows
			}
			if cols > 0 {
				l.Cols = cols
			}
			var opts []maze.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, maze.WithSeed(seed))
			}
			l, err := maze.Layout(l, opts...)
			if err != nil {
				return err
			}
			snap, err := l.Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(l)
			}
			_, err = fmt.Fprint(out, gridgraph.Render(snap, l.Source, l.Destination, nil, nil))
			return err
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "board rows (default from config)")
	cmd.Flags().IntVar(&cols, "cols", 0, "board columns (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for a reproducible maze")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON layout instead of ASCII")

	return cmd
}
