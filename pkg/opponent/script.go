package opponent

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// ErrScriptExhausted is returned once a Script has no moves left.
var ErrScriptExhausted = fmt.Errorf("scripted opponent: %w", ErrNoMove)

// Script proposes a fixed sequence of moves, one per call.
type Script struct {
	mu    sync.Mutex
	moves []domain.Move
	next  int
}

// NewScript creates a Script over moves.
func NewScript(moves ...domain.Move) *Script {
	return &Script{moves: append([]domain.Move(nil), moves...)}
}

// Propose returns the next scripted move.
func (s *Script) Propose(ctx context.Context, _ domain.Board) (domain.Move, error) {
	if err := ctx.Err(); err != nil {
		return domain.Move{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.moves) {
		return domain.Move{}, ErrScriptExhausted
	}
	m := s.moves[s.next]
	s.next++
	return m, nil
}

// Calls returns how many moves have been handed out.
func (s *Script) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
