package opponent

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// DefaultThinkDelay is the pause before a random proposal.
const DefaultThinkDelay = 500 * time.Millisecond

// Random waits a fixed delay and proposes a uniformly random cell.
// It ignores the board, so it may propose an occupied cell.
type Random struct {
	delay time.Duration

	mu   sync.Mutex
	intn func(n int) int
}

// RandomOption configures Random.
type RandomOption func(*Random)

// WithDelay sets the think delay. Zero disables it.
func WithDelay(d time.Duration) RandomOption {
	return func(r *Random) {
		if d >= 0 {
			r.delay = d
		}
	}
}

// WithRand uses rng for coordinates, making proposals reproducible.
func WithRand(rng *rand.Rand) RandomOption {
	return func(r *Random) {
		r.intn = rng.IntN
	}
}

// NewRandom creates a Random source.
func NewRandom(opts ...RandomOption) *Random {
	r := &Random{
		delay: DefaultThinkDelay,
		intn:  rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Delay returns the configured think delay.
func (r *Random) Delay() time.Duration {
	return r.delay
}

// Propose waits for the delay, then returns a (row, col) pair in 0..2.
func (r *Random) Propose(ctx context.Context, _ domain.Board) (domain.Move, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.Move{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return domain.Move{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.Move{Row: r.intn(domain.Size), Col: r.intn(domain.Size)}, nil
}
