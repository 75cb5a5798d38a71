package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// Sentinel errors for search execution.
var (
	// ErrNilSnapshot is returned if a nil snapshot is passed.
	ErrNilSnapshot = errors.New("search: snapshot is nil")

	// ErrUnknownAlgorithm is returned for an unrecognized algorithm.
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")
)

// Algorithm selects a search strategy.
type Algorithm int

const (
	// DFS is depth-first search on a stack frontier.
	DFS Algorithm = iota
	// BFS is breadth-first search on a queue frontier.
	BFS
	// Greedy is greedy best-first search keyed by step cost plus Manhattan distance.
	Greedy
	// Dijkstra is uniform-cost search keyed by accumulated path cost.
	Dijkstra
	// AStar is A* keyed by accumulated path cost plus Euclidean distance.
	AStar
)

var algorithmNames = [...]string{"DFS", "BFS", "Greedy", "Dijkstra", "A*"}

// Algorithms returns every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{DFS, BFS, Greedy, Dijkstra, AStar}
}

// String returns the display name ("DFS", "BFS", "Greedy", "Dijkstra", "A*").
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}

	return algorithmNames[a]
}

// Valid reports whether a names a supported algorithm.
func (a Algorithm) Valid() bool {
	return a >= DFS && a <= AStar
}

// Weighted reports whether water terrain influences the frontier order.
// BFS and DFS traverse water at unit ordering.
func (a Algorithm) Weighted() bool {
	return a == Greedy || a == Dijkstra || a == AStar
}

// ParseAlgorithm resolves a name, case-insensitively. Besides the display
// names it accepts "Dijkstra's", "astar", "a-star", "best-first" and
// "greedy-best-first".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dfs", "depth-first":
		return DFS, nil
	case "bfs", "breadth-first":
		return BFS, nil
	case "greedy", "best-first", "greedy-best-first":
		return Greedy, nil
	case "dijkstra", "dijkstra's", "ucs":
		return Dijkstra, nil
	case "a*", "astar", "a-star":
		return AStar, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}

	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseAlgorithm.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v

	return nil
}

// State is the lifecycle stage of one search run.
type State int

const (
	// Ready: validated, nothing expanded yet.
	Ready State = iota
	// Expanding: the main loop is running.
	Expanding
	// Found: the destination was extracted from the frontier.
	Found
	// Exhausted: the frontier emptied without reaching the destination.
	Exhausted
	// Cancelled: the context was done or a hook aborted the run.
	Cancelled
)

var stateNames = [...]string{"ready", "expanding", "found", "exhausted", "cancelled"}

func (s State) String() string {
	if s < Ready || s > Cancelled {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Option configures Search via functional arguments.
type Option func(*Options)

// Options holds parameters and callbacks for one Search call.
type Options struct {
	// Ctx allows cancellation; checked once per loop iteration.
	Ctx context.Context

	// OnExpand is called after a cell's neighbors are pushed. Returning an
	// error aborts the search with state Cancelled.
	OnExpand func(c gridgraph.Cell) error

	// OnEnqueue is called for every frontier insertion with the insertion key
	// (0 for DFS and BFS).
	OnEnqueue func(c gridgraph.Cell, key float64)
}

// DefaultOptions returns Options with a background context and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		OnExpand:  func(gridgraph.Cell) error { return nil },
		OnEnqueue: func(gridgraph.Cell, float64) {},
	}
}

// WithContext sets a context for cancellation. A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnExpand registers the per-expansion pacing hook.
func WithOnExpand(fn func(c gridgraph.Cell) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnEnqueue registers a callback for frontier insertions.
func WithOnEnqueue(fn func(c gridgraph.Cell, key float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// Result is the outcome of one search run.
type Result struct {
	Algorithm   Algorithm      `json:"algorithm"`
	Source      gridgraph.Cell `json:"source"`
	Destination gridgraph.Cell `json:"destination"`
	State       State          `json:"state"`

	// Path runs from the cell after Source through Destination inclusive.
	// Empty when Source == Destination; nil unless State == Found.
	Path []gridgraph.Cell `json:"path"`

	// Cost is the sum of entry costs over Path.
	Cost int `json:"cost"`

	// Explored lists expanded cells in expansion order, one per OnExpand call.
	// Source and Destination never appear.
	Explored []gridgraph.Cell `json:"explored"`

	// Pushed counts frontier insertions, duplicates included.
	Pushed int `json:"pushed"`
}

// Found reports whether a path was found.
func (r *Result) Found() bool {
	return r != nil && r.State == Found
}
