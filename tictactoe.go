package tictactoe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/tictactoe/internal/game"
	"github.com/aretw0/tictactoe/internal/logging"
	"github.com/aretw0/tictactoe/internal/runtime"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/opponent"
)

// subscriberBuffer is the channel capacity of each Subscribe call.
const subscriberBuffer = 16

// Game is the high-level entry point for the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Game struct {
	table      *runtime.Table[domain.GameContext]
	source     opponent.MoveSource
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	hopLimit   int
	thinkDelay time.Duration
	onError    func(error)
	sessionID  string

	engMu   sync.RWMutex
	engine  *runtime.Engine[domain.GameContext]
	ctx     context.Context
	stopped bool
	done    chan struct{}

	mu      sync.Mutex
	subs    map[uint64]chan domain.Snapshot
	nextSub uint64
	seq     uint64
	last    domain.Snapshot
}

// Option defines a functional option for configuring the Game.
type Option func(*Game)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Game) {
		g.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the game.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithMoveSource replaces the random opponent.
func WithMoveSource(src opponent.MoveSource) Option {
	return func(g *Game) {
		g.source = src
	}
}

// WithThinkDelay sets the delay of the default random opponent.
// It has no effect together with WithMoveSource.
func WithThinkDelay(d time.Duration) Option {
	return func(g *Game) {
		g.thinkDelay = d
	}
}

// WithHopLimit bounds immediate resolution (default runtime.DefaultHopLimit).
func WithHopLimit(limit int) Option {
	return func(g *Game) {
		g.hopLimit = limit
	}
}

// WithErrorHandler receives fatal errors raised while applying an opponent move.
func WithErrorHandler(fn func(error)) Option {
	return func(g *Game) {
		g.onError = fn
	}
}

// WithSessionID labels published snapshots and log lines.
func WithSessionID(id string) Option {
	return func(g *Game) {
		g.sessionID = id
	}
}

// New builds a game in the idle state. Call Start before sending events.
func New(opts ...Option) (*Game, error) {
	g := &Game{
		thinkDelay: opponent.DefaultThinkDelay,
		subs:       make(map[uint64]chan domain.Snapshot),
		ctx:        context.Background(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	if g.sessionID != "" {
		g.logger = g.logger.With("session_id", g.sessionID)
	}
	if g.source == nil {
		g.source = opponent.NewRandom(opponent.WithDelay(g.thinkDelay))
	}

	table, err := game.NewTable(g.source)
	if err != nil {
		return nil, fmt.Errorf("failed to build game table: %w", err)
	}
	g.table = table
	g.last = domain.Snapshot{
		SessionID: g.sessionID,
		StateName: table.Initial(),
		Context:   game.NewContext(),
	}
	g.engine = g.newEngine()
	return g, nil
}

func (g *Game) newEngine() *runtime.Engine[domain.GameContext] {
	eng := runtime.NewEngine(g.table, game.NewContext(),
		runtime.WithLogger(g.logger),
		runtime.WithLifecycleHooks(g.hooks),
		runtime.WithHopLimit(g.hopLimit),
		runtime.WithErrorHandler(g.onError),
	)
	eng.Observe(g.publish)
	return eng
}

func (g *Game) current() *runtime.Engine[domain.GameContext] {
	g.engMu.RLock()
	defer g.engMu.RUnlock()
	return g.engine
}

// Start publishes the idle snapshot and makes the game accept events.
// ctx bounds the opponent's work for the lifetime of the game.
func (g *Game) Start(ctx context.Context) error {
	g.engMu.Lock()
	g.ctx = ctx
	eng := g.engine
	g.engMu.Unlock()
	return eng.Start(ctx)
}

// Send delivers a raw event. Unmatched events and illegal moves return nil
// without changing anything.
func (g *Game) Send(ev domain.Event) error {
	return g.current().Send(ev)
}

// Choose picks the human's symbol.
func (g *Game) Choose(mark domain.Mark) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("invalid player symbol %q", mark)
	}
	return g.Send(domain.ChooseEvent(mark))
}

// Play places the active symbol at m.
func (g *Game) Play(m domain.Move) error {
	_, c := g.current().Snapshot()
	return g.Send(domain.PlayEvent(c.Active, m))
}

// Snapshot returns the last published snapshot.
func (g *Game) Snapshot() domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// Inspect returns the rule table for visualization or introspection tools.
func (g *Game) Inspect() []domain.StateInfo {
	return g.table.Describe()
}

// Err returns the last fatal error raised while applying an opponent move.
func (g *Game) Err() error {
	return g.current().Err()
}

// Subscribe returns a channel that receives the current snapshot followed by
// every later one. A subscriber that falls behind loses its oldest pending
// snapshots. The channel is closed when ctx is done or the game stops.
func (g *Game) Subscribe(ctx context.Context) <-chan domain.Snapshot {
	ch := make(chan domain.Snapshot, subscriberBuffer)

	g.mu.Lock()
	if g.subs == nil {
		g.mu.Unlock()
		close(ch)
		return ch
	}
	id := g.nextSub
	g.nextSub++
	g.subs[id] = ch
	ch <- g.last
	g.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			g.unsubscribe(id)
		case <-g.done:
		}
	}()
	return ch
}

// Await blocks until a published snapshot satisfies match.
func (g *Game) Await(ctx context.Context, match func(domain.Snapshot) bool) (domain.Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for snap := range g.Subscribe(ctx) {
		if match(snap) {
			return snap, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{}, runtime.ErrStopped
}

// AwaitSettled blocks until the game waits for the human or is over.
func (g *Game) AwaitSettled(ctx context.Context) (domain.Snapshot, error) {
	return g.Await(ctx, func(s domain.Snapshot) bool {
		return s.StateName.Settled()
	})
}

// Reset abandons the current game and starts a fresh one in idle.
// Subscribers stay attached.
func (g *Game) Reset() error {
	g.engMu.Lock()
	defer g.engMu.Unlock()

	if g.stopped {
		return runtime.ErrStopped
	}
	g.engine.Stop()
	g.engine = g.newEngine()
	g.logger.Debug("game reset")
	return g.engine.Start(g.ctx)
}

// Stop cancels the opponent and closes every subscription.
func (g *Game) Stop() {
	g.engMu.Lock()
	if !g.stopped {
		g.stopped = true
		close(g.done)
	}
	eng := g.engine
	g.engMu.Unlock()

	eng.Stop()

	g.mu.Lock()
	defer g.mu.Unlock()
	for id, ch := range g.subs {
		close(ch)
		delete(g.subs, id)
	}
	g.subs = nil
}

// publish runs under the engine lock.
func (g *Game) publish(state domain.StateName, c domain.GameContext) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	g.last = domain.Snapshot{
		SessionID: g.sessionID,
		StateName: state,
		Context:   c,
		Seq:       g.seq,
	}
	for _, ch := range g.subs {
		offer(ch, g.last)
	}
}

// offer never blocks: when ch is full the oldest entry makes room.
func offer(ch chan domain.Snapshot, snap domain.Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (g *Game) unsubscribe(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ch, ok := g.subs[id]; ok {
		close(ch)
		delete(g.subs, id)
	}
}
