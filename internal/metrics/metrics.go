// Package metrics defines the Prometheus collectors recorded by search runs,
// streaming sessions and the layout store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the pathviz collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// searches counts finished runs by algorithm and terminal state
	searches *prometheus.CounterVec
	// duration tracks wall time per run, pacing included
	duration *prometheus.HistogramVec
	// expanded tracks cells expanded per run
	expanded *prometheus.HistogramVec
	// pathLength tracks path length of successful runs
	pathLength *prometheus.HistogramVec

	streams  prometheus.Gauge
	storeOps *prometheus.CounterVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pathviz_search_total",
			Help: "Search runs by algorithm and terminal state",
		}, []string{"algorithm", "state"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathviz_search_duration_seconds",
			Help:    "Search run duration in seconds, pacing included",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"algorithm"}),
		expanded: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathviz_search_expanded_cells",
			Help:    "Cells expanded per search run",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 1000, 5000, 25000},
		}, []string{"algorithm"}),
		pathLength: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathviz_search_path_length",
			Help:    "Path length of successful search runs",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 1000},
		}, []string{"algorithm"}),
		streams: f.NewGauge(prometheus.GaugeOpts{
			Name: "pathviz_stream_sessions_active",
			Help: "Open WebSocket streaming sessions",
		}),
		storeOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pathviz_store_operations_total",
			Help: "Layout store operations by operation and result",
		}, []string{"operation", "result"}),
	}
}

// ObserveSearch records one finished run.
func (m *Metrics) ObserveSearch(algorithm, state string, d time.Duration, expanded, pathLen int, found bool) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(algorithm, state).Inc()
	m.duration.WithLabelValues(algorithm).Observe(d.Seconds())
	m.expanded.WithLabelValues(algorithm).Observe(float64(expanded))
	if found {
		m.pathLength.WithLabelValues(algorithm).Observe(float64(pathLen))
	}
}

// StreamOpened increments the active session gauge; call the returned
// function when the session ends.
func (m *Metrics) StreamOpened() (closed func()) {
	if m == nil {
		return func() {}
	}
	m.streams.Inc()

	return m.streams.Dec
}

// ObserveStore records a store operation; err == nil counts as "ok".
func (m *Metrics) ObserveStore(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeOps.WithLabelValues(op, result).Inc()
}
