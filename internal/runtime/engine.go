package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/tictactoe/internal/logging"
	"github.com/aretw0/tictactoe/pkg/domain"
)

// DefaultHopLimit bounds immediate resolution after a single transition.
const DefaultHopLimit = 64

// Observer receives every published (state, context) pair.
// It runs under the engine lock and must not call back into the engine.
type Observer[C any] func(state domain.StateName, ctx C)

// EngineOption configures an Engine.
type EngineOption func(*settings)

type settings struct {
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	hopLimit int
	onError  func(error)
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithHopLimit overrides DefaultHopLimit. Values below 1 are ignored.
func WithHopLimit(limit int) EngineOption {
	return func(s *settings) {
		if limit > 0 {
			s.hopLimit = limit
		}
	}
}

// WithErrorHandler receives fatal errors raised while delivering an
// invocation result, where no caller is waiting for a return value.
func WithErrorHandler(fn func(error)) EngineOption {
	return func(s *settings) {
		s.onError = fn
	}
}

// Engine runs a Table. All state, context and the active invocation are
// guarded by one mutex, so Send and invocation results are serialized.
type Engine[C any] struct {
	table    *Table[C]
	settings settings
	observer Observer[C]

	mu      sync.Mutex
	current domain.StateName
	context C
	active  *invocation
	tokens  uint64
	parent  context.Context
	started bool
	stopped bool
	lastErr error

	tasks sync.WaitGroup
}

// NewEngine creates an engine positioned on the table's initial state.
// Nothing happens until Start.
func NewEngine[C any](table *Table[C], initial C, opts ...EngineOption) *Engine[C] {
	s := settings{
		logger:   logging.NewNop(),
		hopLimit: DefaultHopLimit,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Engine[C]{
		table:    table,
		settings: s,
		current:  table.Initial(),
		context:  initial,
		parent:   context.Background(),
	}
}

// Observe registers the snapshot observer. It must be called before Start.
func (e *Engine[C]) Observe(fn Observer[C]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observer = fn
}

// Start publishes the initial snapshot, resolves immediate rules of the
// initial state and starts its invocation if it has one.
// ctx bounds every invocation the engine starts.
func (e *Engine[C]) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return ErrStopped
	}
	if e.started {
		return ErrAlreadyStarted
	}
	e.started = true
	e.parent = ctx

	e.publish()
	return e.settle(domain.Event{})
}

// Send delivers an event. The first matching rule of the current state is
// taken and immediate rules are resolved before Send returns. An event that
// matches nothing is dropped and Send returns nil.
// Guard and reducer failures are returned as *RuleError, a guard cycle as
// *ImmediateLoopError.
func (e *Engine[C]) Send(ev domain.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return ErrStopped
	}
	if !e.started {
		return ErrNotStarted
	}
	return e.dispatch(ev)
}

// Snapshot returns the current state name and a copy of the context.
func (e *Engine[C]) Snapshot() (domain.StateName, C) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current, e.context
}

// Invoking reports whether an invocation handle is outstanding.
func (e *Engine[C]) Invoking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

// Err returns the last fatal error raised on the asynchronous delivery path.
func (e *Engine[C]) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Stop cancels the active invocation and waits for running tasks to return.
// Late results are discarded. Stop is idempotent.
func (e *Engine[C]) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	e.cancelActive()
	e.mu.Unlock()

	e.tasks.Wait()
}

func (e *Engine[C]) dispatch(ev domain.Event) error {
	def, _ := e.table.State(e.current)

	for _, r := range def.Rules {
		if r.Immediate() || r.Event != ev.Type {
			continue
		}
		ok, err := e.evalGuard(r, ev)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := e.transition(r, ev, false); err != nil {
			return err
		}
		return e.settle(ev)
	}

	e.settings.logger.Debug("event dropped", "state", e.current, "event", ev.Type)
	if e.settings.hooks.OnDrop != nil {
		e.settings.hooks.OnDrop(e.parent, &domain.DropEvent{
			HookBase: domain.HookBase{Timestamp: time.Now(), Type: domain.HookDrop},
			State:    e.current,
			Event:    ev.Type,
		})
	}
	return nil
}

// settle takes immediate rules until none matches, then starts the
// invocation of the state it settled in.
func (e *Engine[C]) settle(trigger domain.Event) error {
	for hops := 0; ; {
		def, _ := e.table.State(e.current)
		r, found, err := e.matchImmediate(def, trigger)
		if err != nil {
			return err
		}
		if !found {
			break
		}
		hops++
		if hops > e.settings.hopLimit {
			return &ImmediateLoopError{State: e.current, Hops: e.settings.hopLimit}
		}
		if err := e.transition(r, trigger, true); err != nil {
			return err
		}
	}

	def, _ := e.table.State(e.current)
	if def.Invoke != nil {
		e.startInvocation(def)
	}
	return nil
}

func (e *Engine[C]) matchImmediate(def *StateDef[C], trigger domain.Event) (Rule[C], bool, error) {
	for _, r := range def.Rules {
		if !r.Immediate() {
			continue
		}
		ok, err := e.evalGuard(r, trigger)
		if err != nil {
			return Rule[C]{}, false, err
		}
		if ok {
			return r, true, nil
		}
	}
	return Rule[C]{}, false, nil
}

// transition reduces, leaves the current state (cancelling its invocation)
// and enters the target. A self-transition is a full exit and re-entry.
func (e *Engine[C]) transition(r Rule[C], ev domain.Event, immediate bool) error {
	next := e.context
	if r.Reduce != nil {
		var err error
		if next, err = e.evalReduce(r, ev); err != nil {
			return err
		}
	}

	from := e.current
	e.cancelActive()
	e.current = r.Target
	e.context = next

	e.settings.logger.Debug("transition", "from", from, "to", r.Target, "event", r.Event)
	if e.settings.hooks.OnTransition != nil {
		trigger := r.Event
		if immediate {
			trigger = ev.Type
		}
		e.settings.hooks.OnTransition(e.parent, &domain.TransitionEvent{
			HookBase:  domain.HookBase{Timestamp: time.Now(), Type: domain.HookTransition},
			From:      from,
			To:        r.Target,
			Trigger:   trigger,
			Immediate: immediate,
		})
	}
	e.publish()
	return nil
}

func (e *Engine[C]) evalGuard(r Rule[C], ev domain.Event) (ok bool, err error) {
	if r.Guard == nil {
		return true, nil
	}
	defer func() {
		if p := recover(); p != nil {
			ok = false
			err = e.ruleError(r, PhaseGuard, panicError{value: p})
		}
	}()
	return r.Guard(e.context, ev), nil
}

func (e *Engine[C]) evalReduce(r Rule[C], ev domain.Event) (next C, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = e.ruleError(r, PhaseReducer, panicError{value: p})
		}
	}()
	next, err = r.Reduce(e.context, ev)
	if err != nil {
		return e.context, e.ruleError(r, PhaseReducer, err)
	}
	return next, nil
}

func (e *Engine[C]) ruleError(r Rule[C], phase RulePhase, cause error) error {
	return &RuleError{
		State:  e.current,
		Event:  r.Event,
		Target: r.Target,
		Phase:  phase,
		Err:    cause,
	}
}

func (e *Engine[C]) publish() {
	if e.observer != nil {
		e.observer(e.current, e.context)
	}
}

func (e *Engine[C]) report(err error) {
	e.lastErr = err
	if e.settings.onError != nil {
		e.settings.onError(err)
	}
}
