package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// Message is one line written by JSONHandler.
type Message struct {
	Type     string           `json:"type"`
	Snapshot *domain.Snapshot `json:"snapshot,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// Message types.
const (
	MessageSnapshot = "snapshot"
	MessageSystem   = "system"
	MessageError    = "error"
)

// JSONHandler implements IOHandler over JSON Lines. Each input line is an
// event such as {"type":"choose_x"} or {"type":"play_x","payload":[1,1]};
// the pseudo events "play", "new", "help" and "quit" map to runner commands.
// Lines that are not JSON objects are parsed with the text grammar.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, snap domain.Snapshot) error {
	return h.Encoder.Encode(Message{Type: MessageSnapshot, Snapshot: &snap, Message: snap.Message()})
}

// Input reads lines until one decodes. Rejected lines are answered with an
// error message.
func (h *JSONHandler) Input(ctx context.Context) (Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Command{}, err
		}
		text, err := h.Reader.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
			return Command{}, err
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		cmd, perr := decodeLine(text)
		if perr == nil {
			return cmd, nil
		}
		if err := h.Encoder.Encode(Message{Type: MessageError, Message: perr.Error()}); err != nil {
			return Command{}, err
		}
		if err == io.EOF {
			return Command{}, io.EOF
		}
	}
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Message{Type: MessageSystem, Message: msg})
}

func decodeLine(text string) (Command, error) {
	clean, err := SanitizeInput(text)
	if err != nil {
		return Command{}, err
	}
	if !strings.HasPrefix(clean, "{") {
		return ParseCommand(clean)
	}

	var raw struct {
		Type    domain.EventType `json:"type"`
		Payload json.RawMessage  `json:"payload,omitempty"`
	}
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return Command{}, fmt.Errorf("invalid event: %w", err)
	}

	switch raw.Type {
	case "":
		return Command{}, fmt.Errorf("event has no type")
	case "new":
		return Command{Kind: CmdNew}, nil
	case "help":
		return Command{Kind: CmdHelp}, nil
	case "quit":
		return Command{Kind: CmdQuit}, nil
	case "play":
		var m domain.Move
		if err := json.Unmarshal(raw.Payload, &m); err != nil {
			return Command{}, fmt.Errorf("%w: %v", domain.ErrInvalidMove, err)
		}
		return Command{Kind: CmdPlay, Move: m}, nil
	}

	var payload any
	if len(raw.Payload) > 0 && string(raw.Payload) != "null" {
		payload = raw.Payload
	}
	return Command{Kind: CmdEvent, Event: domain.NewEvent(raw.Type, payload)}, nil
}
