package search

import (
	"github.com/katalvlaran/pathviz/frontier"
	"github.com/katalvlaran/pathviz/gridgraph"
)

// strategy is the per-algorithm part of the engine: which frontier to use
// and how to key an insertion.
type strategy struct {
	newFrontier func(capacity int) frontier.Frontier[int]
	// key computes the insertion key of cell c reached at pastCost, where
	// step is the entry cost of c.
	key func(c, dst gridgraph.Cell, pastCost, step int) float64
}

func unkeyed(gridgraph.Cell, gridgraph.Cell, int, int) float64 { return 0 }

func newStack(n int) frontier.Frontier[int]    { return frontier.NewStack[int](n) }
func newQueue(n int) frontier.Frontier[int]    { return frontier.NewQueue[int](n) }
func newPriority(n int) frontier.Frontier[int] { return frontier.NewPriority[int](n) }

var strategies = [...]strategy{
	DFS: {newFrontier: newStack, key: unkeyed},
	BFS: {newFrontier: newQueue, key: unkeyed},
	// Greedy looks only at the cell being entered and the distance left.
	Greedy: {
		newFrontier: newPriority,
		key: func(c, dst gridgraph.Cell, _, step int) float64 {
			return float64(step + gridgraph.Manhattan(c, dst))
		},
	},
	Dijkstra: {
		newFrontier: newPriority,
		key: func(_, _ gridgraph.Cell, pastCost, _ int) float64 {
			return float64(pastCost)
		},
	},
	AStar: {
		newFrontier: newPriority,
		key: func(c, dst gridgraph.Cell, pastCost, _ int) float64 {
			return float64(pastCost) + gridgraph.Euclidean(c, dst)
		},
	},
}
