package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tictactoe"
	"github.com/aretw0/tictactoe/internal/config"
	"github.com/aretw0/tictactoe/internal/presentation/tui"
	"github.com/aretw0/tictactoe/pkg/observability"
	"github.com/aretw0/tictactoe/pkg/runner"
	"github.com/muesli/termenv"
)

// PlayOptions configures an interactive session.
type PlayOptions struct {
	Config config.Config
	// JSON switches to JSON Lines on In/Out.
	JSON bool
	// Plain disables colors, the banner and markdown rendering.
	Plain bool
	// Debug adds lifecycle logging to the game.
	Debug bool

	In  io.Reader
	Out io.Writer
}

// RunPlay plays one terminal session against the random opponent until the
// player quits, input ends or ctx is cancelled.
func RunPlay(ctx context.Context, opts PlayOptions, extra ...tictactoe.Option) error {
	logger := NewLogger(opts.Config.LogLevel)

	gameOpts := GameOptions(opts.Config, logger)
	if opts.Debug {
		gameOpts = GameOptions(opts.Config, logger, observability.LogHooks(logger))
	}
	game, err := tictactoe.New(append(gameOpts, extra...)...)
	if err != nil {
		return fmt.Errorf("error initializing game: %w", err)
	}

	var handler runner.IOHandler
	switch {
	case opts.JSON:
		handler = runner.NewJSONHandler(opts.In, opts.Out)
	case opts.Plain:
		handler = runner.NewTextHandler(opts.In, opts.Out)
	default:
		tui.PrintBanner(opts.Out)
		printSystemMessage(opts.Out, "Type \"help\" for commands.")
		handler = runner.NewTextHandler(opts.In, opts.Out,
			runner.WithTextHandlerBoard(tui.NewBoardRendererWithProfile(termenv.ColorProfile()).Render),
			runner.WithTextHandlerRenderer(tui.NewRenderer()),
		)
	}

	helpText := runner.Help
	if !opts.JSON && !opts.Plain {
		helpText = tui.Help
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithHelpText(helpText),
	)
	err = handleExecutionError(r.Run(ctx, game))
	if err == nil && !opts.JSON {
		printSystemMessage(opts.Out, "Bye!")
	}
	return err
}
