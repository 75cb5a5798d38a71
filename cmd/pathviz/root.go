package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/config"
	"github.com/katalvlaran/pathviz/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries state resolved by the root command for its subcommands.
type app struct {
	configPath string
	logLevel   string
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "pathviz",
		Short:         "Grid pathfinding engine with DFS, BFS, Greedy, Dijkstra and A*",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.Resolve(a.configPath))
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
			}
			if _, err = logging.ParseLevel(cfg.Log.Level); err != nil {
				return err
			}
			cfg.Log.Output = cmd.ErrOrStderr()
			cfg.Log.Service = "pathviz"
			a.cfg = cfg
			a.logger = logging.New(cfg.Log)
			slog.SetDefault(a.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(a),
		newRunCmd(a),
		newMazeCmd(a),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// skip config loading
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "pathviz", version)
			return err
		},
	}
}

// readLayout loads a board from path: ".json" files hold a JSON layout,
// anything else an ASCII drawing. "-" reads ASCII from in. An empty path
// yields the configured default board.
func (a *app) readLayout(path string, in io.Reader) (gridgraph.Layout, error) {
	if path == "" {
		return a.cfg.Board.Layout(), nil
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return gridgraph.Layout{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var l gridgraph.Layout
		if err = json.Unmarshal(data, &l); err != nil {
			return l, fmt.Errorf("%s: %w", path, err)
		}
		return l, nil
	}
	l, err := gridgraph.ParseLayout(string(data))
	if err != nil {
		return l, fmt.Errorf("%s: %w", path, err)
	}
	l.WaterCost = a.cfg.Board.WaterCost

	return l, nil
}
