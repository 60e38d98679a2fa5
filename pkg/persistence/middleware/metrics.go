package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics are the collectors behind NewMetricsMiddleware.
type StoreMetrics struct {
	Duration *prometheus.HistogramVec
	Errors   *prometheus.CounterVec
}

// NewStoreMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tictactoe_store_duration_seconds",
				Help:    "Snapshot store latency by operation",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"op"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tictactoe_store_errors_total",
				Help: "Failed snapshot store operations",
			},
			[]string{"op"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Duration, m.Errors)
	}
	return m
}

// NewMetricsMiddleware times every store call. A missing session on Load is
// not counted as an error.
func NewMetricsMiddleware(m *StoreMetrics) Middleware {
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &metricsMiddleware{next: next, m: m}
	}
}

type metricsMiddleware struct {
	next ports.SnapshotStore
	m    *StoreMetrics
}

func (s *metricsMiddleware) observe(op string, start time.Time, err error) {
	s.m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.m.Errors.WithLabelValues(op).Inc()
	}
}

func (s *metricsMiddleware) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	start := time.Now()
	err := s.next.Save(ctx, sessionID, snap)
	s.observe("save", start, err)
	return err
}

func (s *metricsMiddleware) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	start := time.Now()
	snap, err := s.next.Load(ctx, sessionID)
	s.observe("load", start, err)
	return snap, err
}

func (s *metricsMiddleware) Delete(ctx context.Context, sessionID string) error {
	start := time.Now()
	err := s.next.Delete(ctx, sessionID)
	s.observe("delete", start, err)
	return err
}

func (s *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := s.next.List(ctx)
	s.observe("list", start, err)
	return ids, err
}
