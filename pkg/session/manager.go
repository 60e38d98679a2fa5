package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/tictactoe"
	"github.com/aretw0/tictactoe/internal/logging"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/ports"
	"github.com/google/uuid"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// live is a running game and the goroutine mirroring it to the store.
type live struct {
	game   *tictactoe.Game
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager runs many games keyed by session ID and mirrors every published
// snapshot into a SnapshotStore. Operations on one session are serialized;
// locks are reference counted and dropped when unused.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	gamesMu sync.RWMutex
	games   map[string]*live
	closed  bool

	gameOpts []tictactoe.Option
	newID    func() string
	logger   *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithGameOptions are applied to every game the Manager creates.
func WithGameOptions(opts ...tictactoe.Option) Option {
	return func(m *Manager) {
		m.gameOpts = append(m.gameOpts, opts...)
	}
}

// WithIDGenerator replaces the random UUID session IDs.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a new Session Manager with the given snapshot store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		games:  make(map[string]*live),
		newID:  uuid.NewString,
		logger: logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Create starts a new game and returns its session ID and first snapshot.
// The game outlives ctx; it runs until Delete or Close.
func (m *Manager) Create(ctx context.Context) (string, domain.Snapshot, error) {
	id := m.newID()

	var snap domain.Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		opts := append([]tictactoe.Option{tictactoe.WithSessionID(id)}, m.gameOpts...)
		g, err := tictactoe.New(opts...)
		if err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}

		gameCtx, cancel := context.WithCancel(context.Background())
		if err := g.Start(gameCtx); err != nil {
			cancel()
			return fmt.Errorf("failed to start game: %w", err)
		}
		snap = g.Snapshot()

		// Persist immediately to reserve the ID
		if err := m.store.Save(ctx, id, snap); err != nil {
			g.Stop()
			cancel()
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		l := &live{game: g, cancel: cancel, done: make(chan struct{})}

		m.gamesMu.Lock()
		defer m.gamesMu.Unlock()
		if m.closed {
			g.Stop()
			cancel()
			return errors.New("session manager is closed")
		}
		m.games[id] = l
		go m.mirror(id, l)
		return nil
	})
	if err != nil {
		return "", domain.Snapshot{}, err
	}

	m.logger.Info("session created", "session_id", id)
	return id, snap, nil
}

// mirror saves every snapshot of a live game until the game stops.
func (m *Manager) mirror(id string, l *live) {
	defer close(l.done)
	for snap := range l.game.Subscribe(context.Background()) {
		if err := m.store.Save(context.Background(), id, snap); err != nil {
			m.logger.Warn("failed to mirror snapshot", "session_id", id, "seq", snap.Seq, "err", err)
		}
	}
}

func (m *Manager) lookup(sessionID string) (*live, bool) {
	m.gamesMu.RLock()
	defer m.gamesMu.RUnlock()
	l, ok := m.games[sessionID]
	return l, ok
}

// Game returns the running game of a session.
func (m *Manager) Game(sessionID string) (*tictactoe.Game, error) {
	l, ok := m.lookup(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return l.game, nil
}

// Snapshot returns the latest snapshot of a session. Sessions that are not
// running in this process are read from the store.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	if l, ok := m.lookup(sessionID); ok {
		return l.game.Snapshot(), nil
	}
	return m.store.Load(ctx, sessionID)
}

// Send delivers an event to a running session and returns the snapshot
// reached once immediate rules settle.
func (m *Manager) Send(ctx context.Context, sessionID string, ev domain.Event) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		l, ok := m.lookup(sessionID)
		if !ok {
			return domain.ErrSessionNotFound
		}
		if err := l.game.Send(ev); err != nil {
			return err
		}
		snap = l.game.Snapshot()
		return nil
	})
	return snap, err
}

// Reset starts a fresh game in a running session.
func (m *Manager) Reset(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		l, ok := m.lookup(sessionID)
		if !ok {
			return domain.ErrSessionNotFound
		}
		if err := l.game.Reset(); err != nil {
			return err
		}
		snap = l.game.Snapshot()
		return nil
	})
	return snap, err
}

// Subscribe streams the snapshots of a running session until ctx is done.
func (m *Manager) Subscribe(ctx context.Context, sessionID string) (<-chan domain.Snapshot, error) {
	l, ok := m.lookup(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return l.game.Subscribe(ctx), nil
}

// Delete stops the session's game and removes its stored snapshot.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.gamesMu.Lock()
		l, ok := m.games[sessionID]
		delete(m.games, sessionID)
		m.gamesMu.Unlock()

		if ok {
			m.stop(l)
		}
		if err := m.store.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		m.logger.Info("session deleted", "session_id", sessionID)
		return nil
	})
}

// List returns the IDs of running and stored sessions in lexical order.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	stored, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		seen[id] = struct{}{}
	}
	m.gamesMu.RLock()
	for id := range m.games {
		seen[id] = struct{}{}
	}
	m.gamesMu.RUnlock()

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// Close stops every running game. Stored snapshots are kept.
func (m *Manager) Close() {
	m.gamesMu.Lock()
	m.closed = true
	games := m.games
	m.games = make(map[string]*live)
	m.gamesMu.Unlock()

	for _, l := range games {
		m.stop(l)
	}
}

// stop waits for the mirror so no snapshot is saved after it returns.
func (m *Manager) stop(l *live) {
	l.game.Stop()
	l.cancel()
	<-l.done
}
