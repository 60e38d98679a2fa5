package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/tictactoe"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tictactoe",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tictactoe version %s\n", strings.TrimSpace(tictactoe.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
