// Package runner executes searches for the service and the CLI: it wraps
// search.Search with structured logging, Prometheus metrics and OpenTelemetry
// spans, compares algorithms concurrently, and streams paced expansions.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/metrics"
	"github.com/katalvlaran/pathviz/search"
)

const tracerName = "github.com/katalvlaran/pathviz/internal/runner"

// Runner is safe for concurrent use.
type Runner struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the collectors; nil disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithTracerProvider sets the span source; the default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// New returns a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{logger: slog.Default(), tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Summary is the per-run report used by comparisons and stream completion.
type Summary struct {
	Algorithm  string  `json:"algorithm"`
	Weighted   bool    `json:"weighted"`
	State      string  `json:"state"`
	PathLength int     `json:"path_length"`
	Cost       int     `json:"cost"`
	Expanded   int     `json:"expanded"`
	Pushed     int     `json:"pushed"`
	DurationMS float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
}

// Summarize reports res, which may be nil when the search failed validation.
func Summarize(alg search.Algorithm, res *search.Result, d time.Duration, err error) Summary {
	s := Summary{
		Algorithm:  alg.String(),
		Weighted:   alg.Weighted(),
		DurationMS: float64(d.Microseconds()) / 1000,
	}
	if res != nil {
		s.State = res.State.String()
		s.PathLength = len(res.Path)
		s.Cost = res.Cost
		s.Expanded = len(res.Explored)
		s.Pushed = res.Pushed
	}
	if err != nil {
		s.Error = err.Error()
	}

	return s
}

// Run executes one search and records it. Arguments and results are those
// of search.Search; the context is passed to the search.
func (r *Runner) Run(ctx context.Context, snap *gridgraph.Snapshot, src, dst gridgraph.Cell, alg search.Algorithm, opts ...search.Option) (*search.Result, error) {
	ctx, span := r.tracer.Start(ctx, "runner.Run", trace.WithAttributes(
		attribute.String("algorithm", alg.String()),
		attribute.String("source", src.String()),
		attribute.String("destination", dst.String()),
	))
	defer span.End()

	start := time.Now()
	res, err := search.Search(snap, src, dst, alg, slices.Concat(opts, []search.Option{search.WithContext(ctx)})...)
	elapsed := time.Since(start)

	log := r.logger.With(
		slog.String("algorithm", alg.String()),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	)
	if res == nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid search")
		log.Warn("search rejected", slog.String("error", err.Error()))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("state", res.State.String()),
		attribute.Int("expanded", len(res.Explored)),
		attribute.Int("path_len", len(res.Path)),
	)
	r.metrics.ObserveSearch(alg.String(), res.State.String(), elapsed, len(res.Explored), len(res.Path), res.Found())

	attrs := []any{
		slog.String("state", res.State.String()),
		slog.Int("expanded", len(res.Explored)),
		slog.Int("path_len", len(res.Path)),
		slog.Int("cost", res.Cost),
	}
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
		log.Info("search finished", attrs...)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		span.SetStatus(codes.Error, "cancelled")
		log.Info("search cancelled", attrs...)
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, "aborted")
		log.Warn("search aborted", append(attrs, slog.String("error", err.Error()))...)
	}

	return res, err
}

// Compare runs every algorithm in algs (all of them when empty) against the
// same snapshot concurrently and returns one Summary per entry, in order.
// A failed run cancels the others; its error is returned.
func (r *Runner) Compare(ctx context.Context, snap *gridgraph.Snapshot, src, dst gridgraph.Cell, algs []search.Algorithm) ([]Summary, error) {
	if len(algs) == 0 {
		algs = search.Algorithms()
	}
	ctx, span := r.tracer.Start(ctx, "runner.Compare", trace.WithAttributes(
		attribute.Int("algorithms", len(algs)),
	))
	defer span.End()

	out := make([]Summary, len(algs))
	g, gctx := errgroup.WithContext(ctx)
	for i, alg := range algs {
		g.Go(func() error {
			start := time.Now()
			res, err := r.Run(gctx, snap, src, dst, alg)
			out[i] = Summarize(alg, res, time.Since(start), err)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compare failed")
		return out, err
	}

	return out, nil
}
