package main

import (
	"context"
	"os"

	"github.com/aretw0/tictactoe/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Starts an interactive game. Type "x" or "o" to pick a side, "row col" to play,
"new" for a new game and "quit" to leave.

With --json the game speaks JSON Lines: one event per input line
({"type":"choose_x"}, {"type":"play","payload":[1,1]}) and one message per
output line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")
		debug, _ := cmd.Flags().GetBool("debug")

		// Colors and the banner only make sense on a terminal.
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			plain = true
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunPlay(sigCtx, cli.PlayOptions{
			Config: cfg,
			JSON:   jsonMode,
			Plain:  plain,
			Debug:  debug,
			In:     os.Stdin,
			Out:    os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("json", false, "Use JSON Lines on stdin/stdout")
	playCmd.Flags().Bool("plain", false, "Disable colors, banner and markdown")
	playCmd.Flags().Bool("debug", false, "Log every transition to stderr")
	playCmd.Flags().Duration("think-delay", 0, "Opponent delay before each move")

	// play is the default command
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
