package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mark is the content of a board cell, or the symbol of a player.
type Mark string

const (
	// Empty marks an unoccupied cell.
	Empty Mark = "-"
	X     Mark = "x"
	O     Mark = "o"
	// NoMark is the unset player symbol of a fresh game.
	NoMark Mark = ""
)

// IsPlayer reports whether m is one of the two player symbols.
func (m Mark) IsPlayer() bool {
	return m == X || m == O
}

// Upper returns the display form used in messages ("X", "O").
func (m Mark) Upper() string {
	return strings.ToUpper(string(m))
}

// ParseMark accepts "x", "o" in any case.
func ParseMark(s string) (Mark, error) {
	switch Mark(strings.ToLower(strings.TrimSpace(s))) {
	case X:
		return X, nil
	case O:
		return O, nil
	}
	return NoMark, fmt.Errorf("invalid player symbol %q", s)
}

// Size is the side length of the board.
const Size = 3

// Board is a 3x3 grid of marks, indexed [row][col].
// It is a value type: copying a Board copies every cell.
type Board [Size][Size]Mark

// NewBoard returns a board with every cell Empty.
func NewBoard() Board {
	var b Board
	for r := range b {
		for c := range b[r] {
			b[r][c] = Empty
		}
	}
	return b
}

// At returns the mark at the given move's coordinates.
func (b Board) At(m Move) Mark {
	return b[m.Row][m.Col]
}

// Count returns how many cells hold mark.
func (b Board) Count(mark Mark) int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == mark {
				n++
			}
		}
	}
	return n
}

// String renders the board as three lines of "x|o|-".
func (b Board) String() string {
	var sb strings.Builder
	for r, row := range b {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(string(cell))
		}
	}
	return sb.String()
}

// MarshalJSON encodes the board as an array of three arrays of three strings.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]string, Size)
	for r, row := range b {
		rows[r] = make([]string, Size)
		for c, cell := range row {
			rows[r][c] = string(cell)
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes the array-of-arrays form produced by MarshalJSON.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != Size {
		return fmt.Errorf("board must have %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("board row %d must have %d cells, got %d", r, Size, len(row))
		}
		for c, cell := range row {
			mark := Mark(cell)
			if mark != Empty && !mark.IsPlayer() {
				return fmt.Errorf("invalid mark %q at (%d,%d)", cell, r, c)
			}
			b[r][c] = mark
		}
	}
	return nil
}

// Move is a (row, col) coordinate pair.
type Move struct {
	Row int
	Col int
}

// InRange reports whether both coordinates are within 0..2.
func (m Move) InRange() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// MarshalJSON encodes the move as [row, col].
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{m.Row, m.Col})
}

// UnmarshalJSON decodes the [row, col] form.
func (m *Move) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("move must have 2 coordinates, got %d", len(pair))
	}
	m.Row, m.Col = pair[0], pair[1]
	return nil
}

// ParseMove reads "row col", "row,col" or "row, col".
func ParseMove(s string) (Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("%w: expected \"row col\", got %q", ErrInvalidMove, s)
	}
	var m Move
	if _, err := fmt.Sscanf(fields[0]+" "+fields[1], "%d %d", &m.Row, &m.Col); err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	if !m.InRange() {
		return Move{}, fmt.Errorf("%w: %s out of range", ErrInvalidMove, m)
	}
	return m, nil
}
