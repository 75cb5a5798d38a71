package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/runner"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/search"
)

// boardSpec selects a board: an ASCII drawing, a JSON layout, or (when both
// are empty) the configured default board.
type boardSpec struct {
	Layout *gridgraph.Layout `json:"layout,omitempty"`
	Board  string            `json:"board,omitempty"`
	// WaterCost applies to ASCII boards.
	WaterCost int `json:"water_cost,omitempty"`
}

// layoutOf resolves b without validating walls or endpoints.
func (s *Server) layoutOf(b boardSpec) (gridgraph.Layout, error) {
	var l gridgraph.Layout
	switch {
	case b.Board != "":
		var err error
		if l, err = gridgraph.ParseLayout(b.Board); err != nil {
			return l, err
		}
		l.WaterCost = b.WaterCost
	case b.Layout != nil:
		l = *b.Layout
	default:
		l = s.cfg.Board.Layout()
	}
	limit := s.cfg.Server.MaxCells
	if l.Rows > limit || l.Cols > limit || l.Rows*l.Cols > limit {
		return l, fmt.Errorf("%w: %d×%d exceeds %d cells", errTooLarge, l.Rows, l.Cols, limit)
	}

	return l, nil
}

// snapshotOf resolves and builds b.
func (s *Server) snapshotOf(b boardSpec) (gridgraph.Layout, *gridgraph.Snapshot, error) {
	l, err := s.layoutOf(b)
	if err != nil {
		return l, nil, err
	}
	snap, err := l.Build()

	return l, snap, err
}

type searchRequest struct {
	boardSpec
	Algorithm string `json:"algorithm" binding:"required"`
	// Render adds an ASCII drawing of the result.
	Render bool `json:"render"`
}

type searchResponse struct {
	*search.Result
	Weighted bool   `json:"weighted"`
	Render   string `json:"render,omitempty"`
}

func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest(err))
		return
	}
	alg, err := search.ParseAlgorithm(req.Algorithm)
	if err != nil {
		s.fail(c, err)
		return
	}
	l, snap, err := s.snapshotOf(req.boardSpec)
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.runner.Run(c.Request.Context(), snap, l.Source, l.Destination, alg)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := searchResponse{Result: res, Weighted: alg.Weighted()}
	if req.Render {
		resp.Render = gridgraph.Render(snap, l.Source, l.Destination, res.Explored, res.Path)
	}
	c.JSON(http.StatusOK, resp)
}

type compareRequest struct {
	boardSpec
	// Algorithms defaults to all of them.
	Algorithms []string `json:"algorithms"`
}

func (s *Server) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest(err))
		return
	}
	algs := make([]search.Algorithm, 0, len(req.Algorithms))
	for _, name := range req.Algorithms {
		alg, err := search.ParseAlgorithm(name)
		if err != nil {
			s.fail(c, err)
			return
		}
		algs = append(algs, alg)
	}
	l, snap, err := s.snapshotOf(req.boardSpec)
	if err != nil {
		s.fail(c, err)
		return
	}

	sums, err := s.runner.Compare(c.Request.Context(), snap, l.Source, l.Destination, algs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": sums})
}

type mazeRequest struct {
	boardSpec
	Seed *uint64 `json:"seed"`
}

// mazeResponse reports whether the carved maze connects the endpoints; a
// destination off the carving lattice can end up walled in.
type mazeResponse struct {
	Layout    gridgraph.Layout `json:"layout"`
	Reachable bool             `json:"reachable"`
	Regions   int              `json:"regions"`
}

func (s *Server) maze(c *gin.Context) {
	var req mazeRequest
	// an empty body means the default board
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.fail(c, badRequest(err))
			return
		}
	}
	l, err := s.layoutOf(req.boardSpec)
	if err != nil {
		s.fail(c, err)
		return
	}
	var opts []maze.Option
	if req.Seed != nil {
		opts = append(opts, maze.WithSeed(*req.Seed))
	}

	out, err := maze.Layout(l, opts...)
	if err != nil {
		s.fail(c, err)
		return
	}
	snap, err := out.Build()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mazeResponse{
		Layout:    out,
		Reachable: snap.Connected(out.Source, out.Destination),
		Regions:   len(snap.OpenRegions()),
	})
}

type speedInfo struct {
	Name       string `json:"name"`
	IntervalMS int64  `json:"interval_ms"`
}

type algorithmInfo struct {
	Name     string `json:"name"`
	Weighted bool   `json:"weighted"`
}

// describe reports the default board, speed presets and algorithms, which
// is what a client needs to draw its controls.
func (s *Server) describe(c *gin.Context) {
	speeds := make([]speedInfo, 0, len(s.cfg.Speeds))
	for _, name := range s.cfg.SpeedNames() {
		speeds = append(speeds, speedInfo{Name: name, IntervalMS: s.cfg.Speeds[name].Milliseconds()})
	}
	algs := make([]algorithmInfo, 0, 5)
	for _, a := range search.Algorithms() {
		algs = append(algs, algorithmInfo{Name: a.String(), Weighted: a.Weighted()})
	}
	c.JSON(http.StatusOK, gin.H{
		"board":         s.cfg.Board.Layout(),
		"speeds":        speeds,
		"default_speed": s.cfg.DefaultSpeed,
		"algorithms":    algs,
		"events":        []runner.EventType{runner.EventExplore, runner.EventPath, runner.EventDone},
	})
}
