package main

import (
	"context"

	"github.com/aretw0/tictactoe/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host games over HTTP",
	Long: `Starts the HTTP host: JSON endpoints under /games, a Server-Sent Events stream
per game, the rule graph on /graph and Prometheus metrics on /metrics.
Snapshots are mirrored to Redis when --redis-addr is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		logger := cli.NewLogger(cfg.LogLevel)
		err = cli.RunServe(sigCtx, cli.ServeOptions{Config: cfg, Logger: logger})
		if sig := sigCtx.Signal(); sig != nil {
			logger.Info("server stopped", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "HTTP listen address (default from config, :8080)")
	serveCmd.Flags().String("metrics-addr", "", "Separate listen address for /metrics")
	serveCmd.Flags().String("redis-addr", "", "Redis address for snapshot mirroring")
	serveCmd.Flags().String("snapshot-dir", "", "Directory for JSON snapshot files when Redis is not used")
	serveCmd.Flags().Duration("think-delay", 0, "Opponent delay before each move")
}
