package main

import (
	"context"
	"os"

	"github.com/aretw0/tictactoe/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts an MCP server on stdin/stdout so an AI agent can play as the human.

Tools: new_game, choose, play, get_snapshot, get_graph.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunMCP(sigCtx, cfg, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("redis-addr", "", "Redis address for snapshot mirroring")
	mcpCmd.Flags().String("snapshot-dir", "", "Directory for JSON snapshot files when Redis is not used")
}
