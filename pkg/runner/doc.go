/*
Package runner drives a tictactoe.Game from a terminal or a JSON Lines pipe.

The Runner renders every settled snapshot (the game waits for the human or is
over), reads one command and delivers it. Commands the current state does not
accept are reported back and nothing changes.

# Key Components

  - Runner: the play loop.
  - IOHandler: decouples how commands are read and snapshots shown.
  - TextHandler: interactive terminal ("x", "o", "row col", "new", "quit").
  - JSONHandler: one JSON event per input line, one JSON message per output line.

# Usage

	game, _ := tictactoe.New()
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	if err := r.Run(ctx, game); err != nil {
		log.Fatal(err)
	}
*/
package runner
