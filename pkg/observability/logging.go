package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// LogHooks writes every lifecycle notification to logger.
// Transitions and drops go to Debug; failed invocations to Warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "state_transition",
				"from", e.From,
				"to", e.To,
				"trigger", e.Trigger,
				"immediate", e.Immediate,
			)
		},
		OnDrop: func(ctx context.Context, e *domain.DropEvent) {
			logger.DebugContext(ctx, "event_dropped", "state", e.State, "event", e.Event)
		},
		OnInvoke: func(ctx context.Context, e *domain.InvokeEvent) {
			logger.DebugContext(ctx, "invoke_start", "state", e.State, "token", e.Token)
		},
		OnInvokeResult: func(ctx context.Context, e *domain.InvokeEvent) {
			if e.Outcome == domain.InvokeFailed {
				logger.WarnContext(ctx, "invoke_failed", "state", e.State, "token", e.Token, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "invoke_result",
				"state", e.State,
				"token", e.Token,
				"outcome", e.Outcome,
				"result", e.Result,
			)
		},
	}
}
