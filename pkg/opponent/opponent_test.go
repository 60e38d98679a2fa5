package opponent_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/opponent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_ProposesInRange(t *testing.T) {
	src := opponent.NewRandom(opponent.WithDelay(0), opponent.WithRand(rand.New(rand.NewPCG(1, 2))))
	seen := make(map[domain.Move]bool)
	for i := 0; i < 500; i++ {
		m, err := src.Propose(context.Background(), domain.NewBoard())
		require.NoError(t, err)
		require.True(t, m.InRange(), "move %v out of range", m)
		seen[m] = true
	}
	assert.Len(t, seen, 9, "every cell should come up eventually")
}

func TestRandom_Reproducible(t *testing.T) {
	a := opponent.NewRandom(opponent.WithDelay(0), opponent.WithRand(rand.New(rand.NewPCG(7, 7))))
	b := opponent.NewRandom(opponent.WithDelay(0), opponent.WithRand(rand.New(rand.NewPCG(7, 7))))
	for i := 0; i < 20; i++ {
		ma, _ := a.Propose(context.Background(), domain.NewBoard())
		mb, _ := b.Propose(context.Background(), domain.NewBoard())
		assert.Equal(t, ma, mb)
	}
}

func TestRandom_WaitsForDelay(t *testing.T) {
	src := opponent.NewRandom(opponent.WithDelay(30 * time.Millisecond))
	start := time.Now()
	_, err := src.Propose(context.Background(), domain.NewBoard())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, 30*time.Millisecond, src.Delay())
}

func TestRandom_Cancellation(t *testing.T) {
	src := opponent.NewRandom(opponent.WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := src.Propose(ctx, domain.NewBoard())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRandom_DefaultDelay(t *testing.T) {
	assert.Equal(t, opponent.DefaultThinkDelay, opponent.NewRandom().Delay())
}

func TestScript(t *testing.T) {
	src := opponent.NewScript(domain.Move{Row: 0, Col: 0}, domain.Move{Row: 2, Col: 1})

	m, err := src.Propose(context.Background(), domain.NewBoard())
	require.NoError(t, err)
	assert.Equal(t, domain.Move{Row: 0, Col: 0}, m)

	m, err = src.Propose(context.Background(), domain.NewBoard())
	require.NoError(t, err)
	assert.Equal(t, domain.Move{Row: 2, Col: 1}, m)

	_, err = src.Propose(context.Background(), domain.NewBoard())
	assert.ErrorIs(t, err, opponent.ErrScriptExhausted)
	assert.ErrorIs(t, err, opponent.ErrNoMove)
	assert.Equal(t, 2, src.Calls())
}

func TestMoveSourceFunc(t *testing.T) {
	var src opponent.MoveSource = opponent.MoveSourceFunc(func(ctx context.Context, b domain.Board) (domain.Move, error) {
		return domain.Move{Row: 1, Col: 1}, nil
	})
	m, err := src.Propose(context.Background(), domain.NewBoard())
	require.NoError(t, err)
	assert.Equal(t, domain.Move{Row: 1, Col: 1}, m)
}
