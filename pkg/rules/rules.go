// Package rules holds the pure tic-tac-toe predicates and board updates
// used by the machine's guards and reducers.
package rules

import "github.com/aretw0/tictactoe/pkg/domain"

// lines are the eight winning triples: three rows, three columns, two diagonals.
var lines = [8][3]domain.Move{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// LegalMove reports whether the target cell is empty.
// Coordinates must be in range.
func LegalMove(m domain.Move, b domain.Board) bool {
	return b.At(m) == domain.Empty
}

// ApplyMove returns a copy of b with mark placed at m. b is not modified.
func ApplyMove(mark domain.Mark, m domain.Move, b domain.Board) domain.Board {
	b[m.Row][m.Col] = mark
	return b
}

// IsDraw reports whether no cell is empty. It does not check for a winner.
func IsDraw(b domain.Board) bool {
	return b.Count(domain.Empty) == 0
}

// HasWon reports whether mark occupies any complete line.
// It is false for anything but a player symbol.
func HasWon(mark domain.Mark, b domain.Board) bool {
	if !mark.IsPlayer() {
		return false
	}
	for _, line := range lines {
		if b.At(line[0]) == mark && b.At(line[1]) == mark && b.At(line[2]) == mark {
			return true
		}
	}
	return false
}

// SwitchSymbol returns the other player. Any value other than X yields X.
func SwitchSymbol(current domain.Mark) domain.Mark {
	if current == domain.X {
		return domain.O
	}
	return domain.X
}

// IsOpponentTurn reports whether the automated opponent should move.
func IsOpponentTurn(human, active domain.Mark) bool {
	return human != active
}
