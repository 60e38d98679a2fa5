package domain

import (
	"context"
	"time"
)

// HookType defines the category of a lifecycle notification.
type HookType string

const (
	HookTransition   HookType = "transition"
	HookDrop         HookType = "drop"
	HookInvoke       HookType = "invoke"
	HookInvokeResult HookType = "invoke_result"
)

// HookBase contains common fields for all notifications.
type HookBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      HookType  `json:"type"`
}

// TransitionEvent reports one hop. Immediate is true for event-less rules.
type TransitionEvent struct {
	HookBase
	From      StateName `json:"from"`
	To        StateName `json:"to"`
	Trigger   EventType `json:"trigger,omitempty"`
	Immediate bool      `json:"immediate,omitempty"`
}

// DropEvent reports an event that matched no rule.
type DropEvent struct {
	HookBase
	State StateName `json:"state"`
	Event EventType `json:"event"`
}

// InvokeOutcome is the fate of an invocation.
type InvokeOutcome string

const (
	InvokeStarted   InvokeOutcome = "started"
	InvokeApplied   InvokeOutcome = "applied"
	InvokeDiscarded InvokeOutcome = "discarded"
	InvokeFailed    InvokeOutcome = "failed"
)

// InvokeEvent reports the start or the resolution of an invocation.
type InvokeEvent struct {
	HookBase
	State   StateName     `json:"state"`
	Token   uint64        `json:"token"`
	Outcome InvokeOutcome `json:"outcome"`
	Result  any           `json:"result,omitempty"`
	Err     error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// They run while the engine holds its lock and must not call back into it.
type LifecycleHooks struct {
	OnTransition   func(context.Context, *TransitionEvent)
	OnDrop         func(context.Context, *DropEvent)
	OnInvoke       func(context.Context, *InvokeEvent)
	OnInvokeResult func(context.Context, *InvokeEvent)
}

// ComposeHooks returns hooks that call each set in order.
func ComposeHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: func(ctx context.Context, e *TransitionEvent) {
			for _, h := range sets {
				if h.OnTransition != nil {
					h.OnTransition(ctx, e)
				}
			}
		},
		OnDrop: func(ctx context.Context, e *DropEvent) {
			for _, h := range sets {
				if h.OnDrop != nil {
					h.OnDrop(ctx, e)
				}
			}
		},
		OnInvoke: func(ctx context.Context, e *InvokeEvent) {
			for _, h := range sets {
				if h.OnInvoke != nil {
					h.OnInvoke(ctx, e)
				}
			}
		},
		OnInvokeResult: func(ctx context.Context, e *InvokeEvent) {
			for _, h := range sets {
				if h.OnInvokeResult != nil {
					h.OnInvokeResult(ctx, e)
				}
			}
		},
	}
}
