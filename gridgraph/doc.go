// Package gridgraph treats a fixed rectangular grid of cells as a graph for
// pathfinding: 4-directional adjacency, impassable walls and elevated-cost
// water terrain.
//
// What:
//
//   - Grid describes the board dimensions and enumerates neighbors in one
//     fixed canonical order: left, down, right, up.
//   - Snapshot is an immutable set of walls and water cells over a Grid and
//     answers IsBlocked / StepCost in O(1).
//   - Layout is the plain-data form of a board (dimensions, endpoints, walls,
//     water) with JSON and ASCII codecs.
//   - Manhattan and Euclidean distances serve as search heuristics.
//
// Why:
//
//   - Search strategies (see package search) break ties by neighbor
//     enumeration order, so the order must never change.
//   - Cells are compared structurally and indexed as row*Cols+col, never by
//     any textual encoding.
//
// Complexity:
//
//   - Neighbors:        O(1), at most 4 cells.
//   - IsBlocked/StepCost: O(1), dense bitset lookup.
//   - NewSnapshot:      O(R×C + |walls| + |water|), Memory: O(R×C).
//   - OpenRegions:      O(R×C), Memory: O(R×C).
//
// Errors:
//
//   - ErrEmptyGrid: grid has no rows or no columns.
//   - ErrOutOfBounds: a coordinate lies outside the grid.
//   - ErrBlockedEndpoint: source or destination is a wall.
//   - ErrNegativeCost: water cost below zero.
//   - ErrCostTooLarge: water cost above MaxWaterCost.
//   - ErrBadLayout: malformed ASCII or JSON layout.
//
// ASCII layout legend:
//
//	.  open cell        #  wall
//	~  water            S  source
//	D  destination      o  explored (render only)
//	*  path (render only)
package gridgraph
