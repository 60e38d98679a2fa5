/*
Package tictactoe is a tic-tac-toe game driven by a guarded state machine.

The game is a table of states. Each state lists rules that are tried in
declaration order: event rules fire when a matching event is sent, immediate
rules fire on their own as soon as their guard holds. States may invoke an
asynchronous task on entry; the random opponent is one such task. Leaving the
state cancels the task and any late result is discarded.

# Usage

	g, err := tictactoe.New(tictactoe.WithThinkDelay(200 * time.Millisecond))
	if err != nil {
		log.Fatal(err)
	}
	defer g.Stop()

	if err := g.Start(ctx); err != nil {
		log.Fatal(err)
	}
	_ = g.Choose(domain.X)
	_ = g.Play(domain.Move{Row: 1, Col: 1})

	snap, _ := g.Await(ctx, func(s domain.Snapshot) bool {
		return s.StateName == domain.StateWaitX
	})
	fmt.Println(snap.Message())

Subscribe streams every snapshot the game publishes. Inspect returns the rule
table for graph rendering.

See cmd/tictactoe for the terminal client and the HTTP and MCP servers.
*/
package tictactoe
