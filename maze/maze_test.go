package maze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/search"
)

// carvePoints lists the cells sharing start's row and column parity.
func carvePoints(g gridgraph.Grid, start gridgraph.Cell) []gridgraph.Cell {
	var out []gridgraph.Cell
	for r := start.Row % 2; r < g.Rows; r += 2 {
		for c := start.Col % 2; c < g.Cols; c += 2 {
			out = append(out, gridgraph.Cell{Row: r, Col: c})
		}
	}

	return out
}

// TestGenerate_SpanningTree checks that every carve point is open and
// reachable from the start, and that exactly 2P-1 cells are open (P carve
// points joined by P-1 links).
func TestGenerate_SpanningTree(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		start      gridgraph.Cell
	}{
		{"5x5 corner", 5, 5, gridgraph.Cell{Row: 0, Col: 0}},
		{"default board", 20, 50, gridgraph.Cell{Row: 9, Col: 9}},
		{"odd start", 7, 12, gridgraph.Cell{Row: 3, Col: 1}},
		{"single row", 1, 9, gridgraph.Cell{Row: 0, Col: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := gridgraph.NewGrid(tc.rows, tc.cols)
			require.NoError(t, err)
			walls, err := maze.Generate(g, tc.start, maze.WithSeed(11))
			require.NoError(t, err)

			s, err := gridgraph.NewSnapshot(g, walls, nil)
			require.NoError(t, err)
			points := carvePoints(g, tc.start)
			for _, p := range points {
				assert.True(t, s.Connected(tc.start, p), "carve point %v unreachable", p)
			}
			assert.Equal(t, g.Size()-(2*len(points)-1), len(walls))
			assert.Len(t, s.OpenRegions(), 1)
		})
	}
}

func TestGenerate_Seeded(t *testing.T) {
	g, _ := gridgraph.NewGrid(20, 50)
	start := gridgraph.Cell{Row: 9, Col: 9}

	a, err := maze.Generate(g, start, maze.WithSeed(3))
	require.NoError(t, err)
	b, err := maze.Generate(g, start, maze.WithSeed(3))
	require.NoError(t, err)
	c, err := maze.Generate(g, start, maze.WithSeed(4))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerate_KeepOpen(t *testing.T) {
	g, _ := gridgraph.NewGrid(20, 50)
	src, dst := gridgraph.Cell{Row: 9, Col: 9}, gridgraph.Cell{Row: 9, Col: 40}
	for seed := uint64(0); seed < 20; seed++ {
		walls, err := maze.Generate(g, src, maze.WithSeed(seed), maze.WithKeepOpen(dst))
		require.NoError(t, err)
		assert.NotContains(t, walls, dst)
		assert.NotContains(t, walls, src)
	}
}

func TestGenerate_StartOutOfBounds(t *testing.T) {
	g, _ := gridgraph.NewGrid(3, 3)
	_, err := maze.Generate(g, gridgraph.Cell{Row: 3, Col: 0})
	assert.ErrorIs(t, err, maze.ErrStartOutOfBounds)
}

// TestLayout checks a generated default board builds and is solvable: the
// destination sits next to a carve point.
func TestLayout(t *testing.T) {
	base := gridgraph.Layout{
		Rows: 20, Cols: 50,
		Source:      gridgraph.Cell{Row: 9, Col: 9},
		Destination: gridgraph.Cell{Row: 9, Col: 40},
		Walls:       []gridgraph.Cell{{Row: 0, Col: 1}},
	}
	l, err := maze.Layout(base, maze.WithSeed(99))
	require.NoError(t, err)
	s, err := l.Build()
	require.NoError(t, err)

	res, err := search.Search(s, l.Source, l.Destination, search.BFS)
	require.NoError(t, err)
	assert.True(t, res.Found())
	assert.Equal(t, []gridgraph.Cell{{Row: 0, Col: 1}}, base.Walls, "input layout untouched")

	_, err = maze.Layout(gridgraph.Layout{})
	assert.ErrorIs(t, err, gridgraph.ErrEmptyGrid)
}

// TestLayout_CallerOptionsUntouched passes options with spare capacity and
// checks Layout does not write into the caller's backing array.
func TestLayout_CallerOptionsUntouched(t *testing.T) {
	opts := make([]maze.Option, 1, 4)
	opts[0] = maze.WithSeed(3)
	l := gridgraph.Layout{
		Rows: 7, Cols: 7,
		Source:      gridgraph.Cell{Row: 1, Col: 1},
		Destination: gridgraph.Cell{Row: 5, Col: 5},
	}

	_, err := maze.Layout(l, opts...)
	require.NoError(t, err)
	assert.Nil(t, opts[:2][1])
}
