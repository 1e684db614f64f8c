package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/vi-pong/event"
)

const shutdownTimeout = 2 * time.Second

// Manager owns the match metrics and implements event.Sink.
type Manager struct {
	namespace    string
	subsystem    string
	rallyBuckets []float64
	registry     *prometheus.Registry

	paddleHits  *prometheus.CounterVec
	wallBounces prometheus.Counter
	points      *prometheus.CounterVec
	matches     *prometheus.CounterVec
	ticks       prometheus.Counter
	rallyLength prometheus.Histogram

	rally int // Paddle hits since the last point, loop goroutine only
}

// NewManager creates a metrics manager on a private registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:    "vipong",
		subsystem:    "match",
		rallyBuckets: []float64{1, 2, 4, 8, 16, 32},
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.paddleHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "paddle_hits_total",
		Help:      "Total number of ball and paddle collisions",
	}, []string{"side"})

	m.wallBounces = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "wall_bounces_total",
		Help:      "Total number of top and bottom wall bounces",
	})

	m.points = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "points_total",
		Help:      "Total points scored by side",
	}, []string{"side"})

	m.matches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_total",
		Help:      "Total completed matches by winner",
	}, []string{"winner"})

	m.ticks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ticks_total",
		Help:      "Total simulation ticks advanced",
	})

	m.rallyLength = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rally_length",
		Help:      "Paddle hits per point",
		Buckets:   m.rallyBuckets,
	})
}

// Emit records one simulation event.
func (m *Manager) Emit(ev event.Event) {
	switch ev.Type {
	case event.EventPaddleHit:
		m.paddleHits.WithLabelValues(ev.Side.String()).Inc()
		m.rally++
	case event.EventWallBounce:
		m.wallBounces.Inc()
	case event.EventScore:
		m.points.WithLabelValues(ev.Side.String()).Inc()
		m.rallyLength.Observe(float64(m.rally))
		m.rally = 0
	case event.EventMatchOver:
		m.matches.WithLabelValues(ev.Side.String()).Inc()
	case event.EventReplaySelected:
		m.rally = 0
	}
}

// Tick records one simulation step.
func (m *Manager) Tick() {
	m.ticks.Inc()
}

// Registry returns the registry backing the manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve exposes /metrics on addr until ctx is canceled.
// Returns nil after a clean shutdown.
func (m *Manager) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	return m.serve(ctx, ln)
}

func (m *Manager) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("%w: %w", ErrServe, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	return nil
}
