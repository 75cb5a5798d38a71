package search

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pathviz/frontier"
	"github.com/katalvlaran/pathviz/gridgraph"
)

// node is one frontier insertion. Parent links index into the walker's
// arena; noParent marks a first-level node (a neighbor of the source).
type node struct {
	cell     gridgraph.Cell
	parent   int
	pastCost int
}

const noParent = -1

// walker holds the mutable state of a single search run.
type walker struct {
	snap    *gridgraph.Snapshot
	grid    gridgraph.Grid
	dst     gridgraph.Cell
	strat   strategy
	opts    Options
	ctx     context.Context
	nodes   []node
	open    frontier.Frontier[int]
	visited []bool
	nbuf    []gridgraph.Cell
	res     *Result
}

// Search finds a path from src to dst on snap using alg.
//
// On success the Result has State Found and a Path that excludes src and
// ends at dst; when dst is unreachable the State is Exhausted and the error
// is nil. If the context is cancelled or OnExpand returns an error the
// partial Result is returned with State Cancelled and that error.
//
// Returns ErrNilSnapshot, ErrUnknownAlgorithm, gridgraph.ErrOutOfBounds or
// gridgraph.ErrBlockedEndpoint for invalid input.
//
// Complexity: O(V log V) time for the priority strategies (each cell is
// pushed at most once per open neighbor), O(V) for DFS and BFS; O(V) memory.
func Search(snap *gridgraph.Snapshot, src, dst gridgraph.Cell, alg Algorithm, opts ...Option) (*Result, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := snap.CheckEndpoints(src, dst); err != nil {
		return nil, err
	}

	res := &Result{Algorithm: alg, Source: src, Destination: dst, State: Ready}
	if src == dst {
		res.State = Found
		res.Path = []gridgraph.Cell{}

		return res, nil
	}

	g := snap.Grid()
	w := &walker{
		snap:    snap,
		grid:    g,
		dst:     dst,
		strat:   strategies[alg],
		opts:    o,
		ctx:     o.Ctx,
		nodes:   make([]node, 0, g.Size()),
		open:    strategies[alg].newFrontier(g.Size()),
		visited: make([]bool, g.Size()),
		nbuf:    make([]gridgraph.Cell, 0, 4),
		res:     res,
	}
	w.visited[g.Index(src)] = true
	w.pushNeighbors(src, noParent, 0)

	return res, w.loop()
}

// loop runs the expansion loop until a terminal state is reached.
func (w *walker) loop() error {
	w.res.State = Expanding
	for {
		select {
		case <-w.ctx.Done():
			w.res.State = Cancelled
			return w.ctx.Err()
		default:
		}

		id, ok := w.open.Pop()
		if !ok {
			w.res.State = Exhausted
			return nil
		}
		n := w.nodes[id]
		idx := w.grid.Index(n.cell)
		if w.visited[idx] {
			continue // stale duplicate
		}
		w.visited[idx] = true

		if n.cell == w.dst {
			w.res.State = Found
			w.res.Path = w.backtrack(id)
			w.res.Cost = n.pastCost
			return nil
		}

		w.pushNeighbors(n.cell, id, n.pastCost)
		w.res.Explored = append(w.res.Explored, n.cell)
		if err := w.opts.OnExpand(n.cell); err != nil {
			w.res.State = Cancelled
			return fmt.Errorf("search: expand %v: %w", n.cell, err)
		}
	}
}

// pushNeighbors inserts every open, unvisited neighbor of c, in canonical
// order, with parent and accumulated cost derived from the expanded node.
func (w *walker) pushNeighbors(c gridgraph.Cell, parent, pastCost int) {
	w.nbuf = w.grid.AppendNeighbors(w.nbuf[:0], c)
	for _, nb := range w.nbuf {
		if w.snap.IsBlocked(nb) || w.visited[w.grid.Index(nb)] {
			continue
		}
		step := w.snap.StepCost(nb)
		cost := pastCost + step
		key := w.strat.key(nb, w.dst, cost, step)

		w.nodes = append(w.nodes, node{cell: nb, parent: parent, pastCost: cost})
		w.open.Push(len(w.nodes)-1, key)
		w.res.Pushed++
		w.opts.OnEnqueue(nb, key)
	}
}

// backtrack follows parent links from id to the first-level node and
// returns the chain in source-to-destination order.
func (w *walker) backtrack(id int) []gridgraph.Cell {
	var path []gridgraph.Cell
	for i := id; i != noParent; i = w.nodes[i].parent {
		path = append(path, w.nodes[i].cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
