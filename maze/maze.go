package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// ErrStartOutOfBounds is returned when the carve start lies outside the grid.
var ErrStartOutOfBounds = errors.New("maze: start outside grid")

// Option configures Generate.
type Option func(*Options)

// Options holds the random source and the cells that must stay open.
type Options struct {
	// Rand drives direction shuffling.
	Rand *rand.Rand
	// Keep lists cells never emitted as walls (typically the destination).
	Keep []gridgraph.Cell
}

// DefaultOptions returns Options with a randomly seeded PCG source.
func DefaultOptions() Options {
	return Options{Rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand sets the random source. A nil source is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithKeepOpen excludes cells from the returned walls.
func WithKeepOpen(cells ...gridgraph.Cell) Option {
	return func(o *Options) {
		o.Keep = append(o.Keep, cells...)
	}
}

// step is a unit direction; carving moves two steps at a time.
type step struct{ dr, dc int }

var directions = [4]step{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// frame is one carve point on the explicit backtracking stack.
type frame struct {
	at   gridgraph.Cell
	dirs [4]step
	next int
}

// Generate carves a maze over g starting at start and returns the cells that
// remain walls, in row-major order.
// Returns ErrStartOutOfBounds if start is outside g.
//
// Complexity: O(rows*cols) time and memory.
func Generate(g gridgraph.Grid, start gridgraph.Cell, opts ...Option) ([]gridgraph.Cell, error) {
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: %v in %dx%d", ErrStartOutOfBounds, start, g.Rows, g.Cols)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	wall := make([]bool, g.Size())
	for i := range wall {
		wall[i] = true
	}

	stack := []frame{newFrame(o.Rand, start)}
	wall[g.Index(start)] = false
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		target := gridgraph.Cell{Row: top.at.Row + 2*d.dr, Col: top.at.Col + 2*d.dc}
		if !g.InBounds(target) || !wall[g.Index(target)] {
			continue
		}
		link := gridgraph.Cell{Row: top.at.Row + d.dr, Col: top.at.Col + d.dc}
		wall[g.Index(link)] = false
		wall[g.Index(target)] = false
		stack = append(stack, newFrame(o.Rand, target))
	}

	for _, c := range o.Keep {
		if g.InBounds(c) {
			wall[g.Index(c)] = false
		}
	}
	var walls []gridgraph.Cell
	for i, w := range wall {
		if w {
			walls = append(walls, g.Coordinate(i))
		}
	}

	return walls, nil
}

func newFrame(r *rand.Rand, at gridgraph.Cell) frame {
	f := frame{at: at, dirs: directions}
	r.Shuffle(len(f.dirs), func(i, j int) { f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i] })

	return f
}

// Layout generates a maze for the board described by l, carving from its
// source and keeping its destination open. Existing walls are replaced;
// water is kept where it does not coincide with a maze wall.
func Layout(l gridgraph.Layout, opts ...Option) (gridgraph.Layout, error) {
	g, err := gridgraph.NewGrid(l.Rows, l.Cols)
	if err != nil {
		return l, err
	}
	walls, err := Generate(g, l.Source, slices.Concat(opts, []Option{WithKeepOpen(l.Destination)})...)
	if err != nil {
		return l, err
	}
	out := l
	out.Walls = walls

	return out, nil
}
