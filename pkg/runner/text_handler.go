package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/tictactoe/internal/presentation/tui"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/muesli/termenv"
)

// ContentRenderer transforms markdown before it is printed (e.g. glamour).
type ContentRenderer func(string) (string, error)

// BoardRenderer draws a snapshot.
type BoardRenderer func(domain.Snapshot) string

// TextHandler implements the interactive terminal interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Board    BoardRenderer
	Renderer ContentRenderer

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the markdown renderer used for help.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerBoard configures the board renderer.
func WithTextHandlerBoard(board BoardRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Board = board
	}
}

// NewTextHandler creates a handler for standard text IO. The default board
// renderer is plain ASCII.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Board:  tui.NewBoardRendererWithProfile(termenv.Ascii).Render,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// initPump moves blocking reads off the caller so Input can honor ctx.
func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			return
		}
	}
}

func (h *TextHandler) Output(ctx context.Context, snap domain.Snapshot) error {
	_, err := fmt.Fprint(h.Writer, h.Board(snap))
	return err
}

// Input prompts until a line parses. Rejected lines are reported and the
// prompt is shown again.
func (h *TextHandler) Input(ctx context.Context) (Command, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return Command{}, ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			return Command{}, ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return Command{}, io.EOF
			}
			if res.err != nil {
				return Command{}, res.err
			}

			clean, err := SanitizeInput(strings.TrimSpace(res.text))
			if err == nil {
				var cmd Command
				if cmd, err = ParseCommand(clean); err == nil {
					return cmd, nil
				}
			}
			fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	output := msg
	if h.Renderer != nil {
		if rendered, err := h.Renderer(msg); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimRight(output, "\n"))
	return err
}
