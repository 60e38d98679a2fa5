package rules_test

import (
	"testing"

	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/rules"
	"github.com/stretchr/testify/assert"
)

// board builds a Board from three row strings such as "xo-".
func board(rows ...string) domain.Board {
	var b domain.Board
	for r, row := range rows {
		for c, ch := range row {
			b[r][c] = domain.Mark(string(ch))
		}
	}
	return b
}

func TestLegalMove(t *testing.T) {
	b := board("x--", "-o-", "---")
	assert.False(t, rules.LegalMove(domain.Move{Row: 0, Col: 0}, b))
	assert.False(t, rules.LegalMove(domain.Move{Row: 1, Col: 1}, b))
	assert.True(t, rules.LegalMove(domain.Move{Row: 2, Col: 2}, b))
}

func TestApplyMove_DoesNotMutateInput(t *testing.T) {
	b := domain.NewBoard()
	next := rules.ApplyMove(domain.X, domain.Move{Row: 1, Col: 2}, b)

	assert.Equal(t, domain.X, next[1][2])
	assert.Equal(t, domain.Empty, b[1][2])
	assert.Equal(t, 8, next.Count(domain.Empty))
}

func TestApplyMove_Deterministic(t *testing.T) {
	b := board("x--", "-o-", "---")
	m := domain.Move{Row: 2, Col: 0}

	first := rules.ApplyMove(domain.X, m, b)
	second := rules.ApplyMove(domain.X, m, b)

	assert.Equal(t, first, second)
	assert.Equal(t, board("x--", "-o-", "x--"), first)
}

func TestHasWon(t *testing.T) {
	tests := []struct {
		name  string
		board domain.Board
		mark  domain.Mark
		want  bool
	}{
		{"row 0", board("xxx", "oo-", "---"), domain.X, true},
		{"row 1", board("x--", "ooo", "x-x"), domain.O, true},
		{"row 2", board("o--", "-o-", "xxx"), domain.X, true},
		{"col 0", board("o--", "ox-", "o-x"), domain.O, true},
		{"col 1", board("-x-", "ox-", "ox-"), domain.X, true},
		{"col 2", board("--o", "x-o", "x-o"), domain.O, true},
		{"diagonal", board("x-o", "ox-", "--x"), domain.X, true},
		{"anti-diagonal", board("x-o", "xo-", "o--"), domain.O, true},
		{"empty", domain.NewBoard(), domain.X, false},
		{"other player", board("xxx", "oo-", "---"), domain.O, false},
		{"two in a row", board("xx-", "oo-", "---"), domain.X, false},
		{"empty mark on empty board", domain.NewBoard(), domain.Empty, false},
		{"unset mark", board("xxx", "oo-", "---"), domain.NoMark, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.HasWon(tt.mark, tt.board))
		})
	}
}

func TestIsDraw(t *testing.T) {
	assert.False(t, rules.IsDraw(domain.NewBoard()))
	assert.False(t, rules.IsDraw(board("xox", "xoo", "ox-")))
	assert.True(t, rules.IsDraw(board("xox", "xoo", "oxx")))
	// a full board with a line is still "full"; precedence lives in the table
	assert.True(t, rules.IsDraw(board("xxx", "oox", "oxo")))
}

func TestSwitchSymbol(t *testing.T) {
	assert.Equal(t, domain.O, rules.SwitchSymbol(domain.X))
	assert.Equal(t, domain.X, rules.SwitchSymbol(domain.O))
	assert.Equal(t, domain.X, rules.SwitchSymbol(domain.NoMark))
}

func TestIsOpponentTurn(t *testing.T) {
	assert.False(t, rules.IsOpponentTurn(domain.X, domain.X))
	assert.True(t, rules.IsOpponentTurn(domain.X, domain.O))
	assert.True(t, rules.IsOpponentTurn(domain.O, domain.X))
}
