package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// CommandKind tells the runner what a Command asks for.
type CommandKind int

const (
	// CmdEvent sends Command.Event unchanged.
	CmdEvent CommandKind = iota
	// CmdChoose picks the human symbol.
	CmdChoose
	// CmdPlay places the active symbol on Command.Move.
	CmdPlay
	// CmdNew abandons the current game and starts a fresh one.
	CmdNew
	// CmdHelp asks the handler to show usage.
	CmdHelp
	// CmdQuit ends the loop.
	CmdQuit
)

// Command is one decoded line of player input.
type Command struct {
	Kind  CommandKind
	Mark  domain.Mark
	Move  domain.Move
	Event domain.Event
}

// IOHandler is the strategy the runner uses to talk to the player.
// Text (terminal) and JSON-lines (structured) implementations are provided.
type IOHandler interface {
	// Output presents a settled snapshot.
	Output(ctx context.Context, snap domain.Snapshot) error

	// Input blocks for the next command. io.EOF ends the session.
	Input(ctx context.Context) (Command, error)

	// SystemOutput presents a meta-message (usage, rejected commands).
	SystemOutput(ctx context.Context, msg string) error
}

// ParseCommand reads the text grammar: "x" or "o" to choose a side,
// "row col" to play, "new", "help" and "quit".
func ParseCommand(line string) (Command, error) {
	text := strings.ToLower(strings.TrimSpace(line))
	switch text {
	case "":
		return Command{}, fmt.Errorf("empty command")
	case "x", "o":
		return Command{Kind: CmdChoose, Mark: domain.Mark(text)}, nil
	case "new", "restart":
		return Command{Kind: CmdNew}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}, nil
	}

	m, err := domain.ParseMove(text)
	if err != nil {
		if strings.ContainsAny(text, "0123456789") {
			return Command{}, err
		}
		return Command{}, fmt.Errorf("unknown command %q", text)
	}
	return Command{Kind: CmdPlay, Move: m}, nil
}
