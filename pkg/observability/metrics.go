package observability

import (
	"context"

	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts engine activity for Prometheus.
type Metrics struct {
	Transitions   *prometheus.CounterVec
	Dropped       *prometheus.CounterVec
	Invocations   *prometheus.CounterVec
	GamesFinished *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tictactoe_transitions_total",
				Help: "Total number of state transitions",
			},
			[]string{"from", "to"},
		),
		Dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tictactoe_events_dropped_total",
				Help: "Events that matched no rule",
			},
			[]string{"state", "event"},
		),
		Invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tictactoe_invocations_total",
				Help: "Invocations by outcome",
			},
			[]string{"state", "outcome"},
		),
		GamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tictactoe_games_finished_total",
				Help: "Finished games by result",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.Dropped, m.Invocations, m.GamesFinished)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	invoke := func(_ context.Context, e *domain.InvokeEvent) {
		m.Invocations.WithLabelValues(string(e.State), string(e.Outcome)).Inc()
	}
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
			if result, ok := finishResult(e.To); ok {
				m.GamesFinished.WithLabelValues(result).Inc()
			}
		},
		OnDrop: func(_ context.Context, e *domain.DropEvent) {
			m.Dropped.WithLabelValues(string(e.State), string(e.Event)).Inc()
		},
		OnInvoke:       invoke,
		OnInvokeResult: invoke,
	}
}

func finishResult(s domain.StateName) (string, bool) {
	switch s {
	case domain.StateXWins:
		return "x", true
	case domain.StateOWins:
		return "o", true
	case domain.StateGameOver:
		return "draw", true
	}
	return "", false
}
