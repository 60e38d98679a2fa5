package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/tictactoe"
	"github.com/aretw0/tictactoe/pkg/adapters/memory"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/opponent"
	"github.com/aretw0/tictactoe/pkg/ports"
	"github.com/aretw0/tictactoe/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, store ports.SnapshotStore, moves ...domain.Move) *session.Manager {
	t.Helper()
	n := 0
	mgr := session.NewManager(store,
		session.WithGameOptions(tictactoe.WithMoveSource(opponent.NewScript(moves...))),
		session.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("game-%d", n)
		}),
	)
	t.Cleanup(mgr.Close)
	return mgr
}

func TestManager_CreatePersistsIdle(t *testing.T) {
	store := memory.NewStore()
	mgr := newManager(t, store)
	ctx := context.Background()

	id, snap, err := mgr.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "game-1", id)
	assert.Equal(t, domain.StateIdle, snap.StateName)
	assert.Equal(t, id, snap.SessionID)

	stored, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, stored.StateName)
}

func TestManager_SendMirrorsSnapshots(t *testing.T) {
	store := memory.NewStore()
	mgr := newManager(t, store, domain.Move{Row: 2, Col: 2})
	ctx := context.Background()

	id, _, err := mgr.Create(ctx)
	require.NoError(t, err)

	snap, err := mgr.Send(ctx, id, domain.ChooseEvent(domain.X))
	require.NoError(t, err)
	assert.Equal(t, domain.StateWaitX, snap.StateName)

	_, err = mgr.Send(ctx, id, domain.PlayEvent(domain.X, domain.Move{Row: 0, Col: 0}))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		stored, err := store.Load(ctx, id)
		return err == nil &&
			stored.StateName == domain.StateWaitX &&
			stored.Context.Board[2][2] == domain.O
	}, 2*time.Second, 5*time.Millisecond)

	live, err := mgr.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.X, live.Context.Board[0][0])
}

func TestManager_UnknownSession(t *testing.T) {
	mgr := newManager(t, memory.NewStore())
	ctx := context.Background()

	_, err := mgr.Send(ctx, "nope", domain.ChooseEvent(domain.X))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = mgr.Snapshot(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = mgr.Subscribe(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = mgr.Game("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_SnapshotFallsBackToStore(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "old", domain.Snapshot{
		SessionID: "old",
		StateName: domain.StateXWins,
		Context:   domain.NewGameContext(),
	}))

	mgr := newManager(t, store)
	snap, err := mgr.Snapshot(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, domain.StateXWins, snap.StateName)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, ids)

	_, err = mgr.Send(ctx, "old", domain.ChooseEvent(domain.X))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "stored sessions are read-only")
}

func TestManager_DeleteStopsAndForgets(t *testing.T) {
	store := memory.NewStore()
	mgr := newManager(t, store)
	ctx := context.Background()

	id, _, err := mgr.Create(ctx)
	require.NoError(t, err)

	sub, err := mgr.Subscribe(ctx, id)
	require.NoError(t, err)
	<-sub

	require.NoError(t, mgr.Delete(ctx, id))

	for range sub {
	}
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestManager_Reset(t *testing.T) {
	mgr := newManager(t, memory.NewStore())
	ctx := context.Background()

	id, _, err := mgr.Create(ctx)
	require.NoError(t, err)
	_, err = mgr.Send(ctx, id, domain.ChooseEvent(domain.X))
	require.NoError(t, err)

	snap, err := mgr.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, snap.StateName)
}

func TestManager_CreateAfterClose(t *testing.T) {
	mgr := newManager(t, memory.NewStore())
	mgr.Close()

	_, _, err := mgr.Create(context.Background())
	assert.Error(t, err)
}

type failingStore struct{ *memory.Store }

func (failingStore) Save(context.Context, string, domain.Snapshot) error {
	return errors.New("disk full")
}

func TestManager_CreateFailsWhenStoreFails(t *testing.T) {
	mgr := newManager(t, failingStore{memory.NewStore()})

	_, _, err := mgr.Create(context.Background())
	assert.ErrorContains(t, err, "disk full")

	ids, err := mgr.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
