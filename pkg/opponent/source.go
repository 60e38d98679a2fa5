// Package opponent provides move sources for the automated player.
package opponent

import (
	"context"
	"errors"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// MoveSource proposes a move for the automated player. Proposals are not
// required to be legal; the machine retries until one is.
// Implementations must return promptly once ctx is cancelled.
type MoveSource interface {
	Propose(ctx context.Context, board domain.Board) (domain.Move, error)
}

// ErrNoMove marks a source that will never propose again. The machine retries
// any other failure.
var ErrNoMove = errors.New("no moves left")

// MoveSourceFunc adapts a function to MoveSource.
type MoveSourceFunc func(ctx context.Context, board domain.Board) (domain.Move, error)

// Propose calls f.
func (f MoveSourceFunc) Propose(ctx context.Context, board domain.Board) (domain.Move, error) {
	return f(ctx, board)
}
