package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/tictactoe"
	"github.com/aretw0/tictactoe/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the rule table",
	Long:  `Outputs the game machine as a Mermaid flowchart (default), Graphviz DOT or JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		game, err := tictactoe.New()
		if err != nil {
			return fmt.Errorf("error initializing game: %w", err)
		}
		states := game.Inspect()

		out := cmd.OutOrStdout()
		switch format {
		case "mermaid":
			fmt.Fprint(out, graph.GenerateMermaid(states, nil))
		case "dot":
			fmt.Fprint(out, string(graph.GenerateDOT(states, "")))
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(states)
		default:
			return fmt.Errorf("unknown format %q: use mermaid, dot or json", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", "mermaid", "Output format: mermaid, dot or json")
}
