package runtime

import (
	"context"
	"time"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// invocation is the handle of one asynchronous task. Only the handle held
// in Engine.active may deliver a result; cancelled never goes back to false.
type invocation struct {
	token     uint64
	state     domain.StateName
	ctx       context.Context
	cancel    context.CancelFunc
	cancelled bool
}

func (e *Engine[C]) startInvocation(def *StateDef[C]) {
	e.tokens++
	ctx, cancel := context.WithCancel(e.parent)
	inv := &invocation{
		token:  e.tokens,
		state:  def.Name,
		ctx:    ctx,
		cancel: cancel,
	}
	e.active = inv

	e.settings.logger.Debug("invocation started", "state", def.Name, "token", inv.token)
	e.emitInvoke(e.settings.hooks.OnInvoke, inv, domain.InvokeStarted, nil, nil)

	task := def.Invoke
	input := e.context
	e.tasks.Add(1)
	go func() {
		defer e.tasks.Done()
		result, err := runTask(ctx, task, input)
		e.resolve(inv, result, err)
	}()
}

func runTask[C any](ctx context.Context, task Task[C], input C) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicError{value: p}
		}
	}()
	return task(ctx, input)
}

// resolve delivers a task result as a synthetic done (or error) event,
// unless the handle was superseded or cancelled in the meantime.
func (e *Engine[C]) resolve(inv *invocation, result any, taskErr error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != inv || inv.cancelled || inv.ctx.Err() != nil {
		e.settings.logger.Debug("stale invocation result discarded", "state", inv.state, "token", inv.token)
		e.emitInvoke(e.settings.hooks.OnInvokeResult, inv, domain.InvokeDiscarded, result, taskErr)
		return
	}
	e.active = nil
	inv.cancel()

	ev := domain.Event{Type: domain.EventDone, Payload: result}
	outcome := domain.InvokeApplied
	if taskErr != nil {
		ev = domain.Event{Type: domain.EventError, Payload: taskErr}
		outcome = domain.InvokeFailed
		e.settings.logger.Warn("invocation failed", "state", inv.state, "token", inv.token, "err", &InvokeError{State: inv.state, Err: taskErr})
	}
	e.emitInvoke(e.settings.hooks.OnInvokeResult, inv, outcome, result, taskErr)

	if err := e.dispatch(ev); err != nil {
		e.settings.logger.Error("invocation result could not be applied", "state", inv.state, "token", inv.token, "err", err)
		e.report(err)
	}
}

// cancelActive marks the outstanding handle stale and cancels its context.
func (e *Engine[C]) cancelActive() {
	if e.active == nil {
		return
	}
	e.active.cancelled = true
	e.active.cancel()
	e.active = nil
}

func (e *Engine[C]) emitInvoke(hook func(context.Context, *domain.InvokeEvent), inv *invocation, outcome domain.InvokeOutcome, result any, err error) {
	if hook == nil {
		return
	}
	hookType := domain.HookInvokeResult
	if outcome == domain.InvokeStarted {
		hookType = domain.HookInvoke
	}
	hook(e.parent, &domain.InvokeEvent{
		HookBase: domain.HookBase{Timestamp: time.Now(), Type: hookType},
		State:    inv.state,
		Token:    inv.token,
		Outcome:  outcome,
		Result:   result,
		Err:      err,
	})
}
