package domain

// GameContext is the extended state carried by the machine.
// Reducers produce a new value; the engine replaces its copy wholesale.
type GameContext struct {
	Human  Mark  `json:"human_symbol"`
	Active Mark  `json:"active_symbol"`
	Board  Board `json:"board"`
}

// NewGameContext returns the context of a game that has not started:
// both symbols unset and every cell empty.
func NewGameContext() GameContext {
	return GameContext{
		Human:  NoMark,
		Active: NoMark,
		Board:  NewBoard(),
	}
}
