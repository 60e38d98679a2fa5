package runtime_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/tictactoe/internal/runtime"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stateWork     domain.StateName = "work"
	stateFinished domain.StateName = "finished"
	stateFailed   domain.StateName = "failed"

	evStart   domain.EventType = "start"
	evAbort   domain.EventType = "abort"
	evRestart domain.EventType = "restart"
)

func storeResult(_ int, ev domain.Event) (int, error) {
	return ev.Payload.(int), nil
}

// outcomes records invocation results reported through hooks.
type outcomes struct {
	mu   sync.Mutex
	list []domain.InvokeOutcome
}

func (o *outcomes) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInvokeResult: func(_ context.Context, e *domain.InvokeEvent) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.list = append(o.list, e.Outcome)
		},
	}
}

func (o *outcomes) count(kind domain.InvokeOutcome) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, k := range o.list {
		if k == kind {
			n++
		}
	}
	return n
}

func workTable(t *testing.T, task runtime.Task[int]) *runtime.Table[int] {
	return mustTable(t,
		runtime.StateDef[int]{Name: stateA, Rules: []runtime.Rule[int]{{Event: evStart, Target: stateWork}}},
		runtime.StateDef[int]{
			Name:   stateWork,
			Invoke: task,
			Rules: []runtime.Rule[int]{
				{Event: domain.EventDone, Reduce: storeResult, Target: stateFinished},
				{Event: domain.EventError, Target: stateFailed},
				{Event: evAbort, Target: stateA},
				{Event: evRestart, Target: stateWork},
			},
		},
		runtime.StateDef[int]{Name: stateFinished},
		runtime.StateDef[int]{Name: stateFailed},
	)
}

func stateOf(eng *runtime.Engine[int]) domain.StateName {
	s, _ := eng.Snapshot()
	return s
}

func TestInvoke_ResultDeliveredAsDone(t *testing.T) {
	task := func(ctx context.Context, _ int) (any, error) { return 7, nil }
	eng, _ := startEngine(t, workTable(t, task))

	require.NoError(t, eng.Send(domain.NewEvent(evStart, nil)))

	assert.Eventually(t, func() bool { return stateOf(eng) == stateFinished }, time.Second, 5*time.Millisecond)
	_, ctx := eng.Snapshot()
	assert.Equal(t, 7, ctx)
	assert.False(t, eng.Invoking())
}

func TestInvoke_StaleResultDiscardedAfterLeaving(t *testing.T) {
	release := make(chan struct{})
	task := func(ctx context.Context, _ int) (any, error) {
		<-release // deliberately ignores ctx
		return 42, nil
	}
	seen := &outcomes{}
	eng, _ := startEngine(t, workTable(t, task), runtime.WithLifecycleHooks(seen.hooks()))

	require.NoError(t, eng.Send(domain.NewEvent(evStart, nil)))
	require.True(t, eng.Invoking())
	require.NoError(t, eng.Send(domain.NewEvent(evAbort, nil)))
	assert.False(t, eng.Invoking(), "leaving the state cancels the handle")

	close(release)
	assert.Eventually(t, func() bool { return seen.count(domain.InvokeDiscarded) == 1 }, time.Second, 5*time.Millisecond)

	state, ctx := eng.Snapshot()
	assert.Equal(t, stateA, state)
	assert.Equal(t, 0, ctx)
}

func TestInvoke_ReentrySupersedesPreviousHandle(t *testing.T) {
	release := make(chan struct{})
	firstStarted := make(chan struct{})
	var calls atomic.Int32
	task := func(ctx context.Context, _ int) (any, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-release
			return 1, nil
		}
		return 2, nil
	}
	seen := &outcomes{}
	eng, _ := startEngine(t, workTable(t, task), runtime.WithLifecycleHooks(seen.hooks()))

	require.NoError(t, eng.Send(domain.NewEvent(evStart, nil)))
	<-firstStarted
	require.NoError(t, eng.Send(domain.NewEvent(evRestart, nil)))

	assert.Eventually(t, func() bool { return stateOf(eng) == stateFinished }, time.Second, 5*time.Millisecond)

	close(release)
	assert.Eventually(t, func() bool { return seen.count(domain.InvokeDiscarded) == 1 }, time.Second, 5*time.Millisecond)

	_, ctx := eng.Snapshot()
	assert.Equal(t, 2, ctx, "only the latest handle may apply its result")
	assert.Equal(t, 1, seen.count(domain.InvokeApplied))
}

func TestInvoke_TaskErrorBecomesErrorEvent(t *testing.T) {
	task := func(ctx context.Context, _ int) (any, error) { return nil, errors.New("no move") }
	seen := &outcomes{}
	eng, _ := startEngine(t, workTable(t, task), runtime.WithLifecycleHooks(seen.hooks()))

	require.NoError(t, eng.Send(domain.NewEvent(evStart, nil)))
	assert.Eventually(t, func() bool { return stateOf(eng) == stateFailed }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, seen.count(domain.InvokeFailed))
	assert.NoError(t, eng.Err())
}

func TestInvoke_TaskPanicBecomesErrorEvent(t *testing.T) {
	task := func(ctx context.Context, _ int) (any, error) { panic("task exploded") }
	eng, _ := startEngine(t, workTable(t, task))

	require.NoError(t, eng.Send(domain.NewEvent(evStart, nil)))
	assert.Eventually(t, func() bool { return stateOf(eng) == stateFailed }, time.Second, 5*time.Millisecond)
}

func TestInvoke_StopCancelsTask(t *testing.T) {
	started := make(chan struct{})
	task := func(ctx context.Context, _ int) (any, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	seen := &outcomes{}
	table := workTable(t, task)
	eng := runtime.NewEngine(table, 0, runtime.WithLifecycleHooks(seen.hooks()))
	require.NoError(t, eng.Start(context.Background()))
	require.NoError(t, eng.Send(domain.NewEvent(evStart, nil)))
	<-started

	eng.Stop()

	assert.Equal(t, 1, seen.count(domain.InvokeDiscarded))
	assert.Equal(t, stateWork, stateOf(eng))
}

func TestInvoke_ParentContextBoundsTasks(t *testing.T) {
	task := func(ctx context.Context, _ int) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	seen := &outcomes{}
	ctx, cancel := context.WithCancel(context.Background())
	eng := runtime.NewEngine(workTable(t, task), 0, runtime.WithLifecycleHooks(seen.hooks()))
	require.NoError(t, eng.Start(ctx))
	t.Cleanup(eng.Stop)
	require.NoError(t, eng.Send(domain.NewEvent(evStart, nil)))

	cancel()
	assert.Eventually(t, func() bool { return seen.count(domain.InvokeDiscarded) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, stateWork, stateOf(eng))
}

func TestInvoke_FatalErrorOnDeliveryIsReported(t *testing.T) {
	boom := func(int, domain.Event) bool { panic("bad guard") }
	table := mustTable(t,
		runtime.StateDef[int]{
			Name:   stateA,
			Invoke: func(ctx context.Context, _ int) (any, error) { return 1, nil },
			Rules:  []runtime.Rule[int]{{Event: domain.EventDone, Guard: boom, Target: stateB}},
		},
		runtime.StateDef[int]{Name: stateB},
	)

	reported := make(chan error, 1)
	eng := runtime.NewEngine(table, 0, runtime.WithErrorHandler(func(err error) { reported <- err }))
	require.NoError(t, eng.Start(context.Background()))
	t.Cleanup(eng.Stop)

	select {
	case err := <-reported:
		assert.ErrorIs(t, err, runtime.ErrRuleDefect)
		assert.ErrorIs(t, eng.Err(), runtime.ErrRuleDefect)
	case <-time.After(time.Second):
		t.Fatal("fatal error was not reported")
	}
}
