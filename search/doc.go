// Package search runs state-space searches over a gridgraph.Snapshot and
// returns the explored cells in expansion order plus, when the destination
// is reachable, a path from the source to the destination.
//
// Overview:
//
// Five strategies share one engine and differ only in frontier discipline
// and insertion key:
//
//	DFS       stack     –                                   unweighted
//	BFS       queue     –                                   unweighted, fewest edges
//	Greedy    priority  StepCost(n) + Manhattan(n, dst)     ignores accumulated cost
//	Dijkstra  priority  pastCost                            cost-optimal
//	A*        priority  pastCost + Euclidean(n, dst)        see "A* optimality"
//
//   - The frontier is seeded with the open neighbors of the source; the
//     source itself is marked visited and never pushed.
//   - A cell is marked visited when it is first popped (dequeue-time
//     marking). A cell may sit in the frontier several times; later copies
//     are discarded on extraction (lazy deletion).
//   - Neighbors are enumerated in the canonical gridgraph order (left, down,
//     right, up), and Priority breaks equal keys by insertion order, so every
//     run is deterministic.
//
// State machine:
//
//	Ready → Expanding → Found | Exhausted | Cancelled
//
// Exhausted (no path) is a normal outcome, not an error. Cancelled is
// reached when the context is done (checked at the top of every loop
// iteration) or when the OnExpand hook returns an error; Search then returns
// the partial Result together with the error.
//
// Hooks:
//
//   - OnExpand(cell) runs once per expanded cell, after its neighbors are
//     pushed. It is the pacing point for animation: block in it to slow the
//     search down, return an error to abort. A nil hook is a no-op and the
//     search result does not depend on it.
//   - OnEnqueue(cell, key) runs on every frontier insertion.
//
// A* optimality:
//
//	Euclidean distance never exceeds the number of steps between two cells,
//	so with every step cost ≥ 1 the heuristic is consistent and A* returns
//	minimum-cost paths. When water is cheaper than plain ground (water cost
//	0) the heuristic can overestimate and A* may return a costlier path than
//	Dijkstra. This is a known approximation of the heuristic, kept as is.
//
// Errors:
//
//   - ErrNilSnapshot:       snapshot is nil.
//   - ErrUnknownAlgorithm:  Algorithm value or name not recognized.
//   - gridgraph.ErrOutOfBounds:     source or destination outside the grid.
//   - gridgraph.ErrBlockedEndpoint: source or destination is a wall.
//
// Thread safety:
//
//	Each call owns its frontier, visited set and node arena. A Snapshot is
//	immutable, so any number of searches may share one concurrently.
package search
