package runtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/tictactoe/internal/runtime"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stateA domain.StateName = "a"
	stateB domain.StateName = "b"
	stateC domain.StateName = "c"
	stateD domain.StateName = "d"

	evGo domain.EventType = "go"
)

func never(int, domain.Event) bool { return false }

func increment(c int, _ domain.Event) (int, error) { return c + 1, nil }

// recorder collects published snapshots.
type recorder struct {
	mu     sync.Mutex
	states []domain.StateName
	ctxs   []int
}

func (r *recorder) observe(s domain.StateName, c int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
	r.ctxs = append(r.ctxs, c)
}

func (r *recorder) published() []domain.StateName {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.StateName(nil), r.states...)
}

func startEngine(t *testing.T, table *runtime.Table[int], opts ...runtime.EngineOption) (*runtime.Engine[int], *recorder) {
	t.Helper()
	eng := runtime.NewEngine(table, 0, opts...)
	rec := &recorder{}
	eng.Observe(rec.observe)
	require.NoError(t, eng.Start(context.Background()))
	t.Cleanup(eng.Stop)
	return eng, rec
}

func mustTable(t *testing.T, defs ...runtime.StateDef[int]) *runtime.Table[int] {
	t.Helper()
	table, err := runtime.NewTable(stateA, defs...)
	require.NoError(t, err)
	return table
}

func TestEngine_FirstMatchWins(t *testing.T) {
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{
			{Event: evGo, Guard: never, Target: stateB},
			{Event: evGo, Target: stateC},
			{Event: evGo, Target: stateD},
		}},
		runtime.StateDef[int]{Name: stateB},
		runtime.StateDef[int]{Name: stateC},
		runtime.StateDef[int]{Name: stateD},
	)
	eng, _ := startEngine(t, table)

	require.NoError(t, eng.Send(domain.NewEvent(evGo, nil)))
	state, _ := eng.Snapshot()
	assert.Equal(t, stateC, state)
}

func TestEngine_ReducerReplacesContext(t *testing.T) {
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{
			{Event: evGo, Reduce: increment, Target: stateA},
		}},
	)
	eng, rec := startEngine(t, table)

	require.NoError(t, eng.Send(domain.NewEvent(evGo, nil)))
	require.NoError(t, eng.Send(domain.NewEvent(evGo, nil)))

	_, ctx := eng.Snapshot()
	assert.Equal(t, 2, ctx)
	// initial publication plus one per self-transition
	assert.Equal(t, []domain.StateName{stateA, stateA, stateA}, rec.published())
}

func TestEngine_UnmatchedEventIsNoop(t *testing.T) {
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{
			{Event: evGo, Guard: never, Reduce: increment, Target: stateB},
		}},
		runtime.StateDef[int]{Name: stateB},
	)
	var dropped []domain.EventType
	hooks := domain.LifecycleHooks{
		OnDrop: func(_ context.Context, e *domain.DropEvent) { dropped = append(dropped, e.Event) },
	}
	eng, rec := startEngine(t, table, runtime.WithLifecycleHooks(hooks))

	require.NoError(t, eng.Send(domain.NewEvent(evGo, nil)))
	require.NoError(t, eng.Send(domain.NewEvent("unknown", nil)))

	state, ctx := eng.Snapshot()
	assert.Equal(t, stateA, state)
	assert.Equal(t, 0, ctx)
	assert.Len(t, rec.published(), 1, "a dropped event publishes nothing")
	assert.Equal(t, []domain.EventType{evGo, "unknown"}, dropped)
}

func TestEngine_ImmediateChain(t *testing.T) {
	positive := func(c int, _ domain.Event) bool { return c > 0 }
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{
			{Event: evGo, Reduce: increment, Target: stateB},
		}},
		runtime.StateDef[int]{Name: stateB, Rules: []runtime.Rule[int]{
			{Guard: never, Target: stateD},
			{Guard: positive, Target: stateC},
		}},
		runtime.StateDef[int]{Name: stateC, Rules: []runtime.Rule[int]{
			{Reduce: increment, Target: stateD},
		}},
		runtime.StateDef[int]{Name: stateD},
	)

	var immediate []bool
	hooks := domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) { immediate = append(immediate, e.Immediate) },
	}
	eng, rec := startEngine(t, table, runtime.WithLifecycleHooks(hooks))

	require.NoError(t, eng.Send(domain.NewEvent(evGo, nil)))

	state, ctx := eng.Snapshot()
	assert.Equal(t, stateD, state)
	assert.Equal(t, 2, ctx)
	assert.Equal(t, []domain.StateName{stateA, stateB, stateC, stateD}, rec.published())
	assert.Equal(t, []bool{false, true, true}, immediate)
}

func TestEngine_ImmediateOnStart(t *testing.T) {
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{{Target: stateB}}},
		runtime.StateDef[int]{Name: stateB},
	)
	eng, _ := startEngine(t, table)

	state, _ := eng.Snapshot()
	assert.Equal(t, stateB, state)
}

func TestEngine_HopLimit(t *testing.T) {
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{{Event: evGo, Target: stateB}}},
		runtime.StateDef[int]{Name: stateB, Rules: []runtime.Rule[int]{{Target: stateC}}},
		runtime.StateDef[int]{Name: stateC, Rules: []runtime.Rule[int]{{Target: stateB}}},
	)
	eng, _ := startEngine(t, table, runtime.WithHopLimit(10))

	err := eng.Send(domain.NewEvent(evGo, nil))
	require.Error(t, err)

	var loopErr *runtime.ImmediateLoopError
	require.ErrorAs(t, err, &loopErr)
	assert.Equal(t, 10, loopErr.Hops)
	assert.False(t, errors.Is(err, runtime.ErrRuleDefect), "a guard cycle is not a rule defect")
}

func TestEngine_GuardPanic(t *testing.T) {
	boom := func(int, domain.Event) bool { panic("guard exploded") }
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{{Event: evGo, Guard: boom, Target: stateB}}},
		runtime.StateDef[int]{Name: stateB},
	)
	eng, _ := startEngine(t, table)

	err := eng.Send(domain.NewEvent(evGo, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, runtime.ErrRuleDefect)

	var ruleErr *runtime.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, runtime.PhaseGuard, ruleErr.Phase)
	assert.Equal(t, stateA, ruleErr.State)
	assert.Contains(t, err.Error(), "guard exploded")

	state, _ := eng.Snapshot()
	assert.Equal(t, stateA, state)
}

func TestEngine_ReducerError(t *testing.T) {
	cause := errors.New("cannot reduce")
	failing := func(int, domain.Event) (int, error) { return 99, cause }
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{{Event: evGo, Reduce: failing, Target: stateB}}},
		runtime.StateDef[int]{Name: stateB},
	)
	eng, _ := startEngine(t, table)

	err := eng.Send(domain.NewEvent(evGo, nil))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, runtime.ErrRuleDefect)

	state, ctx := eng.Snapshot()
	assert.Equal(t, stateA, state)
	assert.Equal(t, 0, ctx)
}

func TestEngine_ReducerPanic(t *testing.T) {
	var nilMap map[string]int
	panicky := func(c int, _ domain.Event) (int, error) {
		nilMap["x"] = c
		return c, nil
	}
	table := mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{{Event: evGo, Reduce: panicky, Target: stateB}}},
		runtime.StateDef[int]{Name: stateB},
	)
	eng, _ := startEngine(t, table)

	var ruleErr *runtime.RuleError
	require.ErrorAs(t, eng.Send(domain.NewEvent(evGo, nil)), &ruleErr)
	assert.Equal(t, runtime.PhaseReducer, ruleErr.Phase)
}

func TestEngine_Lifecycle(t *testing.T) {
	table := mustTable(t, runtime.StateDef[int]{Name: stateA})
	eng := runtime.NewEngine(table, 0)

	assert.ErrorIs(t, eng.Send(domain.NewEvent(evGo, nil)), runtime.ErrNotStarted)
	require.NoError(t, eng.Start(context.Background()))
	assert.ErrorIs(t, eng.Start(context.Background()), runtime.ErrAlreadyStarted)

	eng.Stop()
	eng.Stop()
	assert.ErrorIs(t, eng.Send(domain.NewEvent(evGo, nil)), runtime.ErrStopped)
}
