package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameContext(t *testing.T) {
	c := NewGameContext()
	assert.Equal(t, NoMark, c.Human)
	assert.Equal(t, NoMark, c.Active)
	assert.Equal(t, 9, c.Board.Count(Empty))
}

func TestBoard_ValueSemantics(t *testing.T) {
	a := NewBoard()
	b := a
	b[0][0] = X
	assert.Equal(t, Empty, a[0][0], "copy must not alias the original")
}

func TestBoard_JSON(t *testing.T) {
	b := NewBoard()
	b[0][2] = O
	b[2][0] = X

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `[["-","-","o"],["-","-","-"],["x","-","-"]]`, string(data))

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b, decoded)

	assert.Error(t, json.Unmarshal([]byte(`[["-"]]`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`[["-","-","q"],["-","-","-"],["-","-","-"]]`), &decoded))
}

func TestSnapshot_JSONShape(t *testing.T) {
	snap := Snapshot{StateName: StateWaitX, Context: GameContext{Human: X, Active: X, Board: NewBoard()}}
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "wait_x", raw["state_name"])
	ctx := raw["context"].(map[string]any)
	assert.Equal(t, "x", ctx["human_symbol"])
	assert.Equal(t, "x", ctx["active_symbol"])
	assert.Len(t, ctx["board"], 3)
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{in: "0 0", want: Move{0, 0}},
		{in: "2,1", want: Move{2, 1}},
		{in: " 1, 2 ", want: Move{1, 2}},
		{in: "3 0", wantErr: true},
		{in: "-1 0", wantErr: true},
		{in: "a b", wantErr: true},
		{in: "1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMove)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_Move(t *testing.T) {
	var fromJSON Event
	require.NoError(t, json.Unmarshal([]byte(`{"type":"play_x","payload":[1,2]}`), &fromJSON))

	tests := []struct {
		name    string
		payload any
		want    Move
		wantErr bool
	}{
		{name: "move", payload: Move{1, 2}, want: Move{1, 2}},
		{name: "pointer", payload: &Move{0, 1}, want: Move{0, 1}},
		{name: "array", payload: [2]int{2, 2}, want: Move{2, 2}},
		{name: "slice", payload: []int{0, 0}, want: Move{0, 0}},
		{name: "json", payload: fromJSON.Payload, want: Move{1, 2}},
		{name: "wrapped", payload: map[string]any{"move": []any{float64(2), float64(0)}}, want: Move{2, 0}},
		{name: "raw", payload: json.RawMessage(`[0,2]`), want: Move{0, 2}},
		{name: "raw wrapped", payload: json.RawMessage(`{"move":[0,1]}`), want: Move{0, 1}},
		{name: "raw null", payload: json.RawMessage(`null`), wantErr: true},
		{name: "raw fraction", payload: json.RawMessage(`[0.5,1]`), wantErr: true},
		{name: "raw object without move", payload: json.RawMessage(`{"row":1}`), wantErr: true},
		{name: "nil", payload: nil, wantErr: true},
		{name: "short", payload: []int{1}, wantErr: true},
		{name: "fraction", payload: []any{1.5, float64(0)}, wantErr: true},
		{name: "string", payload: "1 1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEvent(EventPlayX, tt.payload).Move()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMove)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusMessage(t *testing.T) {
	c := GameContext{Human: X, Active: O, Board: NewBoard()}
	assert.Equal(t, "Choose player", StatusMessage(StateIdle, NewGameContext()))
	assert.Equal(t, "Player O turn", StatusMessage(StateWaitO, c))
	assert.Equal(t, "Thinking...", StatusMessage(StateGenerateMove, c))
	assert.Equal(t, "Player X wins!", StatusMessage(StateXWins, c))
	assert.Equal(t, "It's A Draw!", StatusMessage(StateGameOver, c))
}

func TestEventConstructors(t *testing.T) {
	assert.Equal(t, EventChooseO, ChooseEvent(O).Type)
	ev := PlayEvent(X, Move{1, 1})
	assert.Equal(t, EventPlayX, ev.Type)
	assert.Equal(t, Move{1, 1}, ev.Payload)
}

func TestStateName_Settled(t *testing.T) {
	settled := []StateName{StateIdle, StateWaitX, StateWaitO, StateGameOver, StateXWins, StateOWins}
	for _, s := range settled {
		assert.True(t, s.Settled(), s)
	}
	for _, s := range []StateName{StateTurnX, StateTurnO, StateValidate, StateSwitchPlayer, StateGenerateMove} {
		assert.False(t, s.Settled(), s)
	}
	assert.False(t, StateXWins.AwaitsHuman())
}
