// Package maze generates wall layouts with a randomized recursive
// backtracker.
//
// Every cell starts as a wall. Carving begins at the start cell; at each
// carve point the four directions are shuffled, and for each direction whose
// cell two steps away is an in-bounds wall, the linking cell and the target
// are opened and carving continues from the target. Carve points therefore
// lie on the lattice of cells with the same row and column parity as the
// start, and the open cells form a spanning tree over that lattice: every
// carve point is reachable from the start by exactly one route.
//
// Generation is iterative (an explicit frame stack), so board size is not
// limited by goroutine stack depth. Pass WithSeed for reproducible output.
package maze
