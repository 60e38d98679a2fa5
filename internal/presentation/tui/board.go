package tui

import (
	"strings"

	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/muesli/termenv"
)

// BoardRenderer draws snapshots for a terminal.
type BoardRenderer struct {
	profile termenv.Profile
}

// NewBoardRenderer uses the color profile of the current terminal.
func NewBoardRenderer() *BoardRenderer {
	return NewBoardRendererWithProfile(termenv.ColorProfile())
}

// NewBoardRendererWithProfile pins the color profile; termenv.Ascii disables colors.
func NewBoardRendererWithProfile(p termenv.Profile) *BoardRenderer {
	return &BoardRenderer{profile: p}
}

// Render returns the board grid followed by the status line.
// Empty cells are blank; rows and columns are labeled 0..2.
func (r *BoardRenderer) Render(snap domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("    0   1   2\n")
	for row := 0; row < domain.Size; row++ {
		if row > 0 {
			sb.WriteString("   ---+---+---\n")
		}
		sb.WriteString(string(rune('0' + row)))
		sb.WriteString("  ")
		for col := 0; col < domain.Size; col++ {
			if col > 0 {
				sb.WriteString("|")
			}
			sb.WriteString(" ")
			sb.WriteString(r.cell(snap.Context.Board[row][col]))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(r.status(snap))
	sb.WriteString("\n")
	return sb.String()
}

func (r *BoardRenderer) cell(m domain.Mark) string {
	switch m {
	case domain.X:
		return r.profile.String("X").Foreground(r.profile.Color("#f472b6")).Bold().String()
	case domain.O:
		return r.profile.String("O").Foreground(r.profile.Color("#818cf8")).Bold().String()
	}
	return " "
}

func (r *BoardRenderer) status(snap domain.Snapshot) string {
	s := r.profile.String(snap.Message())
	if snap.Terminal() {
		return s.Foreground(r.profile.Color("#22c55e")).Bold().String()
	}
	return s.Faint().String()
}
