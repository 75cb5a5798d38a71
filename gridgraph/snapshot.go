package gridgraph

import "fmt"

// Snapshot is an immutable obstacle/terrain state over a Grid: the set of
// walls (impassable) and the set of water cells (elevated entry cost).
// Once built it has no mutators, so one Snapshot may be shared by any
// number of concurrent searches.
type Snapshot struct {
	grid      Grid
	walls     []bool // indexed by Grid.Index
	water     []bool
	waterCost int
}

// SnapshotOption configures a Snapshot under construction.
// Invalid values are recorded and surfaced by NewSnapshot.
type SnapshotOption func(*snapshotOptions)

type snapshotOptions struct {
	waterCost int
	err       error
}

// WithWaterCost sets the entry cost of water cells, in [0, MaxWaterCost].
// Default: DefaultWaterCost.
func WithWaterCost(cost int) SnapshotOption {
	return func(o *snapshotOptions) {
		if cost < 0 {
			o.err = fmt.Errorf("%w: water cost %d", ErrNegativeCost, cost)
			return
		}
		if cost > MaxWaterCost {
			o.err = fmt.Errorf("%w: water cost %d exceeds %d", ErrCostTooLarge, cost, MaxWaterCost)
			return
		}
		o.waterCost = cost
	}
}

// NewSnapshot builds a Snapshot over g from the given wall and water cells.
// Input slices are copied; duplicates are harmless. A cell listed in both
// sets is a wall.
// Returns ErrEmptyGrid for a zero grid, ErrOutOfBounds for any cell outside g,
// or ErrNegativeCost / ErrCostTooLarge for a bad WithWaterCost.
// Complexity: O(R×C + |walls| + |water|).
func NewSnapshot(g Grid, walls, water []Cell, opts ...SnapshotOption) (*Snapshot, error) {
	if g.Rows <= 0 || g.Cols <= 0 {
		return nil, ErrEmptyGrid
	}
	o := snapshotOptions{waterCost: DefaultWaterCost}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	s := &Snapshot{
		grid:      g,
		walls:     make([]bool, g.Size()),
		water:     make([]bool, g.Size()),
		waterCost: o.waterCost,
	}
	for _, c := range walls {
		if err := g.Validate(c); err != nil {
			return nil, fmt.Errorf("wall: %w", err)
		}
		s.walls[g.Index(c)] = true
	}
	for _, c := range water {
		if err := g.Validate(c); err != nil {
			return nil, fmt.Errorf("water: %w", err)
		}
		s.water[g.Index(c)] = true
	}

	return s, nil
}

// Grid returns the grid the snapshot covers.
func (s *Snapshot) Grid() Grid { return s.grid }

// WaterCost returns the entry cost of water cells.
func (s *Snapshot) WaterCost() int { return s.waterCost }

// IsBlocked reports whether c is a wall. Cells outside the grid are blocked.
// Complexity: O(1).
func (s *Snapshot) IsBlocked(c Cell) bool {
	if !s.grid.InBounds(c) {
		return true
	}

	return s.walls[s.grid.Index(c)]
}

// IsWater reports whether c is a water cell that is not also a wall.
func (s *Snapshot) IsWater(c Cell) bool {
	if !s.grid.InBounds(c) {
		return false
	}
	i := s.grid.Index(c)

	return s.water[i] && !s.walls[i]
}

// StepCost returns the cost of entering c: WaterCost for water, PlainCost otherwise.
// Complexity: O(1).
func (s *Snapshot) StepCost(c Cell) int {
	if s.IsWater(c) {
		return s.waterCost
	}

	return PlainCost
}

// PathCost sums StepCost over every cell of path. The source is not part
// of a path, so its cost is never counted.
func (s *Snapshot) PathCost(path []Cell) int {
	total := 0
	for _, c := range path {
		total += s.StepCost(c)
	}

	return total
}

// CheckEndpoints validates that src and dst are inside the grid and are
// not walls. Water endpoints are allowed.
func (s *Snapshot) CheckEndpoints(src, dst Cell) error {
	if err := s.grid.Validate(src); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := s.grid.Validate(dst); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if s.IsBlocked(src) {
		return fmt.Errorf("%w: source %v", ErrBlockedEndpoint, src)
	}
	if s.IsBlocked(dst) {
		return fmt.Errorf("%w: destination %v", ErrBlockedEndpoint, dst)
	}

	return nil
}

// Walls returns the wall cells in row-major order.
func (s *Snapshot) Walls() []Cell {
	return s.collect(s.walls, nil)
}

// Water returns the water cells (excluding walls) in row-major order.
func (s *Snapshot) Water() []Cell {
	return s.collect(s.water, s.walls)
}

func (s *Snapshot) collect(set, exclude []bool) []Cell {
	var out []Cell
	for i, on := range set {
		if on && (exclude == nil || !exclude[i]) {
			out = append(out, s.grid.Coordinate(i))
		}
	}

	return out
}
