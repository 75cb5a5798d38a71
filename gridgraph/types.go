// Package gridgraph defines core types, constants, and sentinel errors
// for the gridgraph package of github.com/katalvlaran/pathviz.
package gridgraph

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates the grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: coordinate out of grid bounds")
	// ErrBlockedEndpoint indicates the snapshot marks the source or destination as a wall.
	ErrBlockedEndpoint = errors.New("gridgraph: source or destination is blocked")
	// ErrNegativeCost indicates a negative terrain cost.
	ErrNegativeCost = errors.New("gridgraph: step cost must be non-negative")
	// ErrCostTooLarge indicates a terrain cost above MaxWaterCost.
	ErrCostTooLarge = errors.New("gridgraph: step cost too large")
	// ErrBadLayout indicates a malformed layout description.
	ErrBadLayout = errors.New("gridgraph: malformed layout")
)

const (
	// PlainCost is the cost of entering an open, non-water cell.
	PlainCost = 1
	// DefaultWaterCost is the cost of entering a water cell unless overridden.
	DefaultWaterCost = 10
	// MaxWaterCost bounds the water cost so that path costs on any grid that
	// fits in memory stay exact as float64 frontier keys.
	MaxWaterCost = 1_000_000
)

// Cell is a grid coordinate. Identity is structural: two cells are the same
// cell iff their Row and Col are equal.
type Cell struct {
	Row, Col int
}

// String renders the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// MarshalJSON encodes the cell as a two-element array [row, col].
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a two-element array [row, col].
func (c *Cell) UnmarshalJSON(data []byte) error {
	var rc []int
	if err := json.Unmarshal(data, &rc); err != nil {
		return fmt.Errorf("%w: cell: %v", ErrBadLayout, err)
	}
	if len(rc) != 2 {
		return fmt.Errorf("%w: cell must be [row,col], got %d values", ErrBadLayout, len(rc))
	}
	c.Row, c.Col = rc[0], rc[1]

	return nil
}

// Grid is a fixed R×C board. It is a value type and never changes after
// construction.
type Grid struct {
	Rows, Cols int
}

// neighborOffsets is the canonical enumeration order as (dRow, dCol):
// left, down, right, up.
var neighborOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
