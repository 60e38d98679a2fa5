package graph

import (
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/enetx/g"
)

// GenerateDOT renders the rule table in Graphviz DOT.
// Rules sharing a source and a target are folded into one edge; guarded
// edges are dashed, immediate edges dotted. current may be empty.
func GenerateDOT(states []domain.StateInfo, current domain.StateName) g.String {
	b := g.NewBuilder()

	b.WriteString("digraph TicTacToe {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=box, style=\"rounded,filled\", fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, state := range states {
		if state.Initial {
			b.WriteString("  __start [shape=point, style=invis];\n")
			b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", g.String(state.Name)))
		}
	}

	for _, state := range states {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", g.String(state.Name)))

		switch {
		case state.Name == current:
			attrs.Push("fillcolor=\"#90ee90\"", "penwidth=2")
		case state.Terminal:
			attrs.Push("fillcolor=\"#d3d3d3\"", "peripheries=2")
		case state.Invoked:
			attrs.Push("fillcolor=\"#fff3c4\"", "tooltip=\"invoke\"")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", g.String(state.Name), attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for _, state := range states {
		for _, e := range foldEdges(state.Rules) {
			var edge g.Slice[g.String]
			edge.Push(g.Format("label=\" {} \"", e.labels.Join("\\n")))

			switch {
			case e.immediate:
				edge.Push("style=dotted")
			case e.guarded:
				edge.Push("style=dashed", "color=red", "arrowhead=odiamond")
			}

			b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", g.String(state.Name), g.String(e.target), edge.Join(", ")))
		}
	}

	b.WriteString("}\n")

	return b.String()
}

type dotEdge struct {
	target    domain.StateName
	labels    g.Slice[g.String]
	guarded   bool
	immediate bool
}

// foldEdges groups rules by target, preserving first-seen order.
func foldEdges(rules []domain.RuleInfo) []*dotEdge {
	var edges []*dotEdge
	index := make(map[domain.StateName]*dotEdge)

	for _, r := range rules {
		e, ok := index[r.Target]
		if !ok {
			e = &dotEdge{target: r.Target}
			index[r.Target] = e
			edges = append(edges, e)
		}

		label := g.String(r.Event)
		if r.Immediate() {
			label = "ε"
		}
		if r.Guarded {
			label += " (guarded)"
			e.guarded = true
		}
		if r.Immediate() {
			e.immediate = true
		}
		e.labels.Push(label)
	}
	return edges
}
