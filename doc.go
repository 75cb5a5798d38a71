// Package pathviz is a grid pathfinding playground: build a board of walls
// and water, pick an algorithm, and watch the frontier grow cell by cell
// until the destination is reached or the board is exhausted.
//
// What is inside
//
//	gridgraph/ Grid, Cell, Snapshot (walls + water + step costs), ASCII layouts
//	frontier/  Stack, Queue and a stable min-key Priority frontier
//	search/    DFS, BFS, Greedy best-first, Dijkstra and A* over a Snapshot
//	maze/      randomized recursive-backtracker maze generation
//
// Around the library sit the application layers:
//
//	internal/config  YAML configuration with validation and defaults
//	internal/logging slog setup shared by every component
//	internal/metrics Prometheus collectors for runs, streams and storage
//	internal/store   Badger-backed saved layouts
//	internal/runner  instrumented runs, side-by-side comparison, paced streams
//	internal/server  HTTP API and WebSocket stream (gin)
//	cmd/pathviz      the CLI: run, maze, serve, version
//
// Quick ASCII example (BFS around a wall):
//
//	S..        Soo
//	.#.   →    *#o
//	..D        **D
//
// 'o' marks expanded cells, '*' the path. Source and destination keep their
// letters.
//
// Determinism
//
//	Neighbors are always visited left, down, right, up and priority ties are
//	broken by insertion order, so the same board and algorithm produce the
//	same exploration order and path on every run.
//
//	go install github.com/katalvlaran/pathviz/cmd/pathviz@latest
package pathviz
