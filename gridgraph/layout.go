package gridgraph

import (
	"fmt"
	"strings"
)

// Layout is the plain-data description of a board as supplied by a UI or a
// file: dimensions, endpoints, walls and water. It is what crosses the
// process boundary; Build turns it into an immutable Snapshot.
type Layout struct {
	Rows        int    `json:"rows" yaml:"rows"`
	Cols        int    `json:"cols" yaml:"cols"`
	Source      Cell   `json:"source" yaml:"source"`
	Destination Cell   `json:"destination" yaml:"destination"`
	Walls       []Cell `json:"walls,omitempty" yaml:"walls,omitempty"`
	Water       []Cell `json:"water,omitempty" yaml:"water,omitempty"`
	// WaterCost overrides DefaultWaterCost when non-zero. Zero cannot be
	// expressed here; use NewSnapshot with WithWaterCost(0).
	WaterCost int `json:"water_cost,omitempty" yaml:"water_cost,omitempty"`
}

// Build validates l and returns its Snapshot.
// Returns ErrEmptyGrid, ErrNegativeCost, ErrCostTooLarge, ErrOutOfBounds (walls, water or
// endpoints) or ErrBlockedEndpoint.
func (l Layout) Build() (*Snapshot, error) {
	g, err := NewGrid(l.Rows, l.Cols)
	if err != nil {
		return nil, err
	}
	var opts []SnapshotOption
	if l.WaterCost != 0 {
		opts = append(opts, WithWaterCost(l.WaterCost))
	}
	s, err := NewSnapshot(g, l.Walls, l.Water, opts...)
	if err != nil {
		return nil, err
	}
	if err = s.CheckEndpoints(l.Source, l.Destination); err != nil {
		return nil, err
	}

	return s, nil
}

// ASCII legend runes.
const (
	runeOpen        = '.'
	runeWall        = '#'
	runeWater       = '~'
	runeSource      = 'S'
	runeDestination = 'D'
	runeExplored    = 'o'
	runePath        = '*'
)

// ParseLayout reads an ASCII board: one line per row using the legend
// '.' open, '#' wall, '~' water, 'S' source, 'D' destination.
// Leading and trailing blank lines and surrounding spaces are ignored.
// Exactly one 'S' and one 'D' are required.
func ParseLayout(text string) (Layout, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var l Layout
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return l, fmt.Errorf("%w: empty board", ErrBadLayout)
	}
	l.Rows = len(lines)
	var haveSrc, haveDst bool
	for r, line := range lines {
		line = strings.TrimSpace(line)
		if r == 0 {
			l.Cols = len(line)
		} else if len(line) != l.Cols {
			return Layout{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadLayout, r, len(line), l.Cols)
		}
		for c, ch := range []byte(line) {
			cell := Cell{Row: r, Col: c}
			switch ch {
			case runeOpen:
			case runeWall:
				l.Walls = append(l.Walls, cell)
			case runeWater:
				l.Water = append(l.Water, cell)
			case runeSource:
				if haveSrc {
					return Layout{}, fmt.Errorf("%w: second source at %v", ErrBadLayout, cell)
				}
				l.Source, haveSrc = cell, true
			case runeDestination:
				if haveDst {
					return Layout{}, fmt.Errorf("%w: second destination at %v", ErrBadLayout, cell)
				}
				l.Destination, haveDst = cell, true
			default:
				return Layout{}, fmt.Errorf("%w: unknown symbol %q at %v", ErrBadLayout, ch, cell)
			}
		}
	}
	if !haveSrc || !haveDst {
		return Layout{}, fmt.Errorf("%w: board needs one 'S' and one 'D'", ErrBadLayout)
	}

	return l, nil
}

// Render draws the snapshot as ASCII, one line per row, marking explored
// cells with 'o' and path cells with '*'. The path overrides explored and
// terrain markers; source and destination are always drawn as 'S' and 'D'.
// Cells outside the grid are ignored.
func Render(s *Snapshot, src, dst Cell, explored, path []Cell) string {
	g := s.grid
	board := make([]byte, g.Size())
	for i := range board {
		c := g.Coordinate(i)
		switch {
		case s.IsBlocked(c):
			board[i] = runeWall
		case s.IsWater(c):
			board[i] = runeWater
		default:
			board[i] = runeOpen
		}
	}
	mark := func(cells []Cell, r byte) {
		for _, c := range cells {
			if g.InBounds(c) {
				board[g.Index(c)] = r
			}
		}
	}
	mark(explored, runeExplored)
	mark(path, runePath)
	mark([]Cell{src}, runeSource)
	mark([]Cell{dst}, runeDestination)

	var sb strings.Builder
	sb.Grow(g.Size() + g.Rows)
	for r := 0; r < g.Rows; r++ {
		sb.Write(board[r*g.Cols : (r+1)*g.Cols])
		sb.WriteByte('\n')
	}

	return sb.String()
}
