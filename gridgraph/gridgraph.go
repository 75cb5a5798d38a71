package gridgraph

import "fmt"

// NewGrid constructs a Grid with the given dimensions.
// Returns ErrEmptyGrid if rows or cols is not positive.
// Complexity: O(1).
func NewGrid(rows, cols int) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, fmt.Errorf("%w: %d×%d", ErrEmptyGrid, rows, cols)
	}

	return Grid{Rows: rows, Cols: cols}, nil
}

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (g Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Validate returns ErrOutOfBounds wrapped with the coordinate if c is outside the grid.
func (g Grid) Validate(c Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v not in %d×%d", ErrOutOfBounds, c, g.Rows, g.Cols)
	}

	return nil
}

// Size returns the number of cells, R×C.
func (g Grid) Size() int {
	return g.Rows * g.Cols
}

// Index maps c to its row-major index: row*Cols + col.
// The caller guarantees c is in bounds.
// Complexity: O(1).
func (g Grid) Index(c Cell) int {
	return c.Row*g.Cols + c.Col
}

// Coordinate converts a row-major index back to a Cell.
// Complexity: O(1).
func (g Grid) Coordinate(idx int) Cell {
	return Cell{Row: idx / g.Cols, Col: idx % g.Cols}
}

// Neighbors returns the in-bounds neighbors of c in canonical order:
// left (col-1), down (row+1), right (col+1), up (row-1).
// Out-of-bounds neighbors are omitted. Blocking is not considered here.
// Complexity: O(1).
func (g Grid) Neighbors(c Cell) []Cell {
	return g.AppendNeighbors(make([]Cell, 0, len(neighborOffsets)), c)
}

// AppendNeighbors appends the neighbors of c to dst in canonical order and
// returns the extended slice. Use it in hot loops to reuse a buffer.
func (g Grid) AppendNeighbors(dst []Cell, c Cell) []Cell {
	for _, d := range neighborOffsets {
		n := Cell{Row: c.Row + d[0], Col: c.Col + d[1]}
		if g.InBounds(n) {
			dst = append(dst, n)
		}
	}

	return dst
}

// Adjacent reports whether a and b share an edge under 4-connectivity.
func Adjacent(a, b Cell) bool {
	return Manhattan(a, b) == 1
}
