package domain

// StateName identifies a state of the game machine.
type StateName string

const (
	StateIdle         StateName = "idle"
	StateTurnX        StateName = "turn_x"
	StateWaitX        StateName = "wait_x"
	StateTurnO        StateName = "turn_o"
	StateWaitO        StateName = "wait_o"
	StateSwitchPlayer StateName = "switch_player"
	StateValidate     StateName = "validate"
	StateGenerateMove StateName = "generate_move"
	StateGameOver     StateName = "game_over"
	StateXWins        StateName = "x_wins"
	StateOWins        StateName = "o_wins"
)

// IsTerminal reports whether the game has ended in s.
func (s StateName) IsTerminal() bool {
	switch s {
	case StateGameOver, StateXWins, StateOWins:
		return true
	}
	return false
}

// AwaitsHuman reports whether nothing happens in s until the human acts.
func (s StateName) AwaitsHuman() bool {
	switch s {
	case StateIdle, StateWaitX, StateWaitO:
		return true
	}
	return false
}

// Settled reports whether the game is waiting for the human or over.
func (s StateName) Settled() bool {
	return s.AwaitsHuman() || s.IsTerminal()
}

// StatusMessage returns the line a UI shows for a snapshot.
func StatusMessage(s StateName, c GameContext) string {
	switch s {
	case StateIdle:
		return "Choose player"
	case StateXWins:
		return "Player X wins!"
	case StateOWins:
		return "Player O wins!"
	case StateGameOver:
		return "It's A Draw!"
	case StateGenerateMove:
		return "Thinking..."
	}
	if c.Active.IsPlayer() {
		return "Player " + c.Active.Upper() + " turn"
	}
	return ""
}

// Snapshot is the externally visible state of a game.
// Seq increases by one on every publication.
type Snapshot struct {
	SessionID string      `json:"session_id,omitempty"`
	StateName StateName   `json:"state_name"`
	Context   GameContext `json:"context"`
	Seq       uint64      `json:"seq"`
}

// Terminal is shorthand for s.StateName.IsTerminal().
func (s Snapshot) Terminal() bool {
	return s.StateName.IsTerminal()
}

// Message is the status line for this snapshot.
func (s Snapshot) Message() string {
	return StatusMessage(s.StateName, s.Context)
}
