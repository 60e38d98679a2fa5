// Package game declares the tic-tac-toe machine as a guarded transition table.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/tictactoe/internal/dsl"
	"github.com/aretw0/tictactoe/internal/runtime"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/opponent"
	"github.com/aretw0/tictactoe/pkg/rules"
)

// NewContext returns a fresh game context.
func NewContext() domain.GameContext {
	return domain.NewGameContext()
}

// NewTable builds the game machine. Moves for the automated player come from src.
func NewTable(src opponent.MoveSource) (*runtime.Table[domain.GameContext], error) {
	if src == nil {
		return nil, fmt.Errorf("move source is required")
	}

	b := dsl.New[domain.GameContext](domain.StateIdle)

	b.Add(domain.StateIdle).
		On(domain.EventChooseX, domain.StateTurnX).Assign(choose(domain.X)).
		On(domain.EventChooseO, domain.StateTurnX).Assign(choose(domain.O))

	b.Add(domain.StateTurnX).
		Always(domain.StateGenerateMove).When(opponentTurn).
		Always(domain.StateWaitX)

	b.Add(domain.StateWaitX).
		On(domain.EventPlayX, domain.StateValidate).When(legalPlay).Assign(placeActive)

	b.Add(domain.StateTurnO).
		Always(domain.StateGenerateMove).When(opponentTurn).
		Always(domain.StateWaitO)

	b.Add(domain.StateWaitO).
		On(domain.EventPlayO, domain.StateValidate).When(legalPlay).Assign(placeActive)

	b.Add(domain.StateSwitchPlayer).
		Always(domain.StateTurnX).When(nextIs(domain.X)).Assign(activate(domain.X)).
		Always(domain.StateTurnO).When(nextIs(domain.O)).Assign(activate(domain.O))

	b.Add(domain.StateValidate).
		Always(domain.StateXWins).When(won(domain.X)).
		Always(domain.StateOWins).When(won(domain.O)).
		Always(domain.StateGameOver).When(boardFull).
		Always(domain.StateSwitchPlayer)

	// An illegal or failed proposal re-enters the state, which starts a fresh invocation.
	b.Add(domain.StateGenerateMove).
		Invoke(propose(src)).
		On(domain.EventDone, domain.StateValidate).When(legalPlay).Assign(placeActive).
		On(domain.EventDone, domain.StateGenerateMove).
		On(domain.EventError, domain.StateGenerateMove).When(retryable)

	b.Add(domain.StateGameOver)
	b.Add(domain.StateXWins)
	b.Add(domain.StateOWins)

	return b.Build()
}

func choose(human domain.Mark) func(domain.GameContext, domain.Event) domain.GameContext {
	return func(c domain.GameContext, _ domain.Event) domain.GameContext {
		c.Human = human
		c.Active = domain.X
		return c
	}
}

func activate(mark domain.Mark) func(domain.GameContext, domain.Event) domain.GameContext {
	return func(c domain.GameContext, _ domain.Event) domain.GameContext {
		c.Active = mark
		return c
	}
}

func opponentTurn(c domain.GameContext, _ domain.Event) bool {
	return rules.IsOpponentTurn(c.Human, c.Active)
}

// legalPlay is false for payloads that are not an in-range move.
func legalPlay(c domain.GameContext, ev domain.Event) bool {
	m, err := ev.Move()
	if err != nil || !m.InRange() {
		return false
	}
	return rules.LegalMove(m, c.Board)
}

// retryable is false once the source reports it has nothing left to propose.
func retryable(_ domain.GameContext, ev domain.Event) bool {
	err, _ := ev.Payload.(error)
	return !errors.Is(err, opponent.ErrNoMove)
}

// placeActive runs only after legalPlay, so the payload is known to decode.
func placeActive(c domain.GameContext, ev domain.Event) domain.GameContext {
	m, _ := ev.Move()
	c.Board = rules.ApplyMove(c.Active, m, c.Board)
	return c
}

func nextIs(mark domain.Mark) runtime.Guard[domain.GameContext] {
	return func(c domain.GameContext, _ domain.Event) bool {
		return rules.SwitchSymbol(c.Active) == mark
	}
}

func won(mark domain.Mark) runtime.Guard[domain.GameContext] {
	return func(c domain.GameContext, _ domain.Event) bool {
		return rules.HasWon(mark, c.Board)
	}
}

func boardFull(c domain.GameContext, _ domain.Event) bool {
	return rules.IsDraw(c.Board)
}

func propose(src opponent.MoveSource) runtime.Task[domain.GameContext] {
	return func(ctx context.Context, c domain.GameContext) (any, error) {
		m, err := src.Propose(ctx, c.Board)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}
