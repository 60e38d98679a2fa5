package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tictactoe"
	"github.com/aretw0/tictactoe/internal/logging"
	"github.com/aretw0/tictactoe/pkg/domain"
)

// Help lists the text commands.
const Help = `Commands: "x" or "o" to pick your side, "row col" to play (e.g. "1 2"), "new" for a new game, "quit" to leave.`

// Runner drives a Game from an IOHandler: it renders every settled snapshot,
// reads a command and delivers it, until the player quits or input ends.
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on stdin/stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// HelpText is shown for the help command.
	HelpText string
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:   logging.NewNop(),
		HelpText: Help,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts game and plays it until quit, end of input or ctx cancellation.
// The game is stopped on return. End of input and quit return nil.
func (r *Runner) Run(ctx context.Context, game *tictactoe.Game) error {
	handler := r.resolveHandler()
	defer game.Stop()

	if err := game.Start(ctx); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	var shown uint64
	for {
		snap, err := game.AwaitSettled(ctx)
		if err != nil {
			return r.exit(ctx, err)
		}
		if snap.Seq != shown {
			if err := handler.Output(ctx, snap); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			shown = snap.Seq
		}

		cmd, err := handler.Input(ctx)
		if err != nil {
			return r.exit(ctx, err)
		}

		before := snap.Seq
		done, err := r.apply(ctx, game, handler, cmd)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if cmd.Kind == CmdHelp {
			continue
		}

		after, err := game.AwaitSettled(ctx)
		if err != nil {
			return r.exit(ctx, err)
		}
		if after.Seq == before {
			r.Logger.Debug("command ignored", "state", snap.StateName, "kind", cmd.Kind)
			if err := handler.SystemOutput(ctx, rejection(snap)); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
	}
}

func (r *Runner) apply(ctx context.Context, game *tictactoe.Game, handler IOHandler, cmd Command) (bool, error) {
	var err error
	switch cmd.Kind {
	case CmdQuit:
		return true, nil
	case CmdHelp:
		err = handler.SystemOutput(ctx, r.HelpText)
	case CmdNew:
		err = game.Reset()
	case CmdChoose:
		err = game.Choose(cmd.Mark)
	case CmdPlay:
		err = game.Play(cmd.Move)
	case CmdEvent:
		err = game.Send(cmd.Event)
	default:
		err = fmt.Errorf("unknown command kind %d", cmd.Kind)
	}
	if err != nil {
		return false, fmt.Errorf("command failed: %w", err)
	}
	return false, nil
}

// exit maps the reasons the loop stops to Run's result.
func (r *Runner) exit(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	if ctx.Err() != nil {
		r.Logger.Debug("runner interrupted", "err", ctx.Err())
		return ctx.Err()
	}
	return err
}

func rejection(snap domain.Snapshot) string {
	switch {
	case snap.Terminal():
		return `The game is over. Type "new" to play again.`
	case snap.StateName == domain.StateIdle:
		return `Pick a side first: "x" or "o".`
	}
	return "That move is not allowed."
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}
