package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []domain.StateName
	CurrentState  domain.StateName
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a rule table.
// It applies semantic styling:
// - Initial: ((Circle))
// - Invoked: [[Subroutine]]
// - Terminal: ([Stadium])
// - Default: [Rectangle]
// Immediate rules are dotted; guarded rules carry a "?" after their label.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(states []domain.StateInfo, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, state := range states {
		safeID := sanitizeMermaidID(string(state.Name))

		opener, closer := "[", "]"
		switch {
		case state.Initial:
			opener, closer = "((", "))"
		case state.Invoked:
			opener, closer = "[[", "]]"
		case state.Terminal:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, state.Name, closer))

		for _, r := range state.Rules {
			safeTo := sanitizeMermaidID(string(r.Target))
			label := ruleLabel(r)

			arrow := "-->"
			if r.Immediate() {
				arrow = "-.->"
			}
			if label != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", label)
				if r.Immediate() {
					arrow = fmt.Sprintf("-. \"%s\" .->", label)
				}
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, name := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(string(name))
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(string(overlay.CurrentState))))
		}
	}

	return sb.String()
}

// ruleLabel is the event name, with "?" appended to guarded rules.
func ruleLabel(r domain.RuleInfo) string {
	label := string(r.Event)
	if r.Guarded {
		label += "?"
	}
	return label
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
