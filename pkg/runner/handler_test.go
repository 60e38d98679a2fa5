package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr bool
	}{
		{line: "x", want: Command{Kind: CmdChoose, Mark: domain.X}},
		{line: " O ", want: Command{Kind: CmdChoose, Mark: domain.O}},
		{line: "1 2", want: Command{Kind: CmdPlay, Move: domain.Move{Row: 1, Col: 2}}},
		{line: "2,0", want: Command{Kind: CmdPlay, Move: domain.Move{Row: 2, Col: 0}}},
		{line: "new", want: Command{Kind: CmdNew}},
		{line: "help", want: Command{Kind: CmdHelp}},
		{line: "quit", want: Command{Kind: CmdQuit}},
		{line: "exit", want: Command{Kind: CmdQuit}},
		{line: "", wantErr: true},
		{line: "3 3", wantErr: true},
		{line: "dance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_OutOfRangeIsInvalidMove(t *testing.T) {
	_, err := ParseCommand("0 9")
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
}

func TestTextHandler_OutputAndPrompt(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader("x\x07\n"), out)

	snap := domain.Snapshot{StateName: domain.StateIdle, Context: domain.NewGameContext(), Seq: 1}
	require.NoError(t, h.Output(context.Background(), snap))
	assert.Contains(t, out.String(), "Choose player")

	cmd, err := h.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CmdChoose, Mark: domain.X}, cmd, "control characters are stripped")
	assert.True(t, strings.HasSuffix(out.String(), "> "))

	_, err = h.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_SystemOutputUsesRenderer(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader(""), out, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s + "\n\n", nil
	}))

	require.NoError(t, h.SystemOutput(context.Background(), "hello"))
	assert.Equal(t, "Rendered: hello\n", out.String())
}

func TestTextHandler_CustomBoard(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader(""), out, WithTextHandlerBoard(func(s domain.Snapshot) string {
		return string(s.StateName)
	}))

	require.NoError(t, h.Output(context.Background(), domain.Snapshot{StateName: domain.StateWaitX}))
	assert.Equal(t, "wait_x", out.String())
}

func TestJSONHandler_Output(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewJSONHandler(strings.NewReader(""), buf)

	snap := domain.Snapshot{SessionID: "s", StateName: domain.StateXWins, Context: domain.NewGameContext(), Seq: 7}
	require.NoError(t, h.Output(context.Background(), snap))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &msg))
	assert.Equal(t, MessageSnapshot, msg.Type)
	assert.Equal(t, "Player X wins!", msg.Message)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, uint64(7), msg.Snapshot.Seq)
}

func TestJSONHandler_Input(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		`{"type":"choose_o"}`,
		``,
		`{"type":"play_o","payload":[1,1]}`,
		`{"type":"play","payload":[2,2]}`,
		`{"type":""}`,
		`new`,
	}, "\n"))
	out := &bytes.Buffer{}
	h := NewJSONHandler(in, out)
	ctx := context.Background()

	cmd, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, CmdEvent, cmd.Kind)
	assert.Equal(t, domain.EventChooseO, cmd.Event.Type)
	assert.Nil(t, cmd.Event.Payload)

	cmd, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPlayO, cmd.Event.Type)
	m, err := cmd.Event.Move()
	require.NoError(t, err)
	assert.Equal(t, domain.Move{Row: 1, Col: 1}, m)

	cmd, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CmdPlay, Move: domain.Move{Row: 2, Col: 2}}, cmd)

	cmd, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, CmdNew, cmd.Kind)
	assert.Contains(t, out.String(), `"type":"error"`)

	_, err = h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}
