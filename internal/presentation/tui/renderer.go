package tui

import (
	"github.com/charmbracelet/glamour"
)

// Help is the markdown shown by the interactive client.
const Help = `# Tic Tac Toe

Pick your symbol, then take turns with the computer.

| Input | Action |
|---|---|
| ` + "`x`" + ` or ` + "`o`" + ` | choose your symbol |
| ` + "`row col`" + ` | play a cell, e.g. ` + "`1 2`" + ` or ` + "`1,2`" + ` |
| ` + "`new`" + ` | start over |
| ` + "`quit`" + ` | leave |

X always moves first.
`

// NewRenderer returns a function that renders markdown using glamour.
// A renderer that cannot be built falls back to the raw markdown.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
