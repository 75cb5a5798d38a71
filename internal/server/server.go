// Package server exposes the search engine over HTTP: JSON endpoints for
// single searches, comparisons, maze generation and saved layouts, plus a
// WebSocket endpoint that streams paced expansions to a browser.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/katalvlaran/pathviz/internal/config"
	"github.com/katalvlaran/pathviz/internal/metrics"
	"github.com/katalvlaran/pathviz/internal/runner"
	"github.com/katalvlaran/pathviz/internal/store"
)

// Deps are the collaborators of a Server. Runner and Store are required.
type Deps struct {
	Config  config.Config
	Runner  *runner.Runner
	Store   *store.Store
	Metrics *metrics.Metrics
	// Gatherer backs /metrics; nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Server holds the HTTP routes.
type Server struct {
	cfg      config.Config
	runner   *runner.Runner
	store    *store.Store
	metrics  *metrics.Metrics
	logger   *slog.Logger
	engine   *gin.Engine
	upgrader websocket.Upgrader
	sessions sessionSet
}

// New builds the router.
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		cfg:     d.Config,
		runner:  d.Runner,
		store:   d.Store,
		metrics: d.Metrics,
		logger:  d.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 16 * 1024,
		},
	}

	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware("pathviz"), s.requestLogger())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/config", s.describe)
		v1.POST("/search", s.search)
		v1.POST("/compare", s.compare)
		v1.POST("/maze", s.maze)
		v1.GET("/ws", s.stream)

		layouts := v1.Group("/layouts")
		{
			layouts.GET("", s.listLayouts)
			layouts.POST("", s.createLayout)
			layouts.GET("/:id", s.getLayout)
			layouts.PUT("/:id", s.updateLayout)
			layouts.DELETE("/:id", s.deleteLayout)
		}
	}
	s.engine = r

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully within the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. Shutdown stops new
// requests, closes open WebSocket sessions with a going-away frame, and
// waits for in-flight requests and sessions up to the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
	}
	// hijacked connections are invisible to Shutdown
	srv.RegisterOnShutdown(s.sessions.closeAll)
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.sessions.closeAll()
	if err := s.sessions.wait(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
