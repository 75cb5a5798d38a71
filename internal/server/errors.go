package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/config"
	"github.com/katalvlaran/pathviz/internal/store"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/search"
)

var (
	errBadRequest = errors.New("server: bad request")
	errTooLarge   = errors.New("server: board too large")
)

// badRequest marks a decoding failure as a client error.
func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

// statusFor maps package sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, errTooLarge),
		errors.Is(err, gridgraph.ErrEmptyGrid),
		errors.Is(err, gridgraph.ErrOutOfBounds),
		errors.Is(err, gridgraph.ErrBlockedEndpoint),
		errors.Is(err, gridgraph.ErrNegativeCost),
		errors.Is(err, gridgraph.ErrCostTooLarge),
		errors.Is(err, gridgraph.ErrBadLayout),
		errors.Is(err, search.ErrUnknownAlgorithm),
		errors.Is(err, maze.ErrStartOutOfBounds),
		errors.Is(err, config.ErrUnknownSpeed),
		errors.Is(err, store.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": "..."} with its mapped status.
func (s *Server) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
