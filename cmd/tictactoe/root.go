package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tictactoe/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-tac-toe against a random opponent, driven by a guarded state machine",
	Long: `tictactoe plays tic-tac-toe in the terminal, hosts games over HTTP and MCP,
and exports the rule table as a Mermaid or Graphviz diagram.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig layers the config file, the environment and the flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	for flag, dst := range map[string]*string{
		"addr":         &cfg.Addr,
		"metrics-addr": &cfg.MetricsAddr,
		"redis-addr":   &cfg.RedisAddr,
		"snapshot-dir": &cfg.SnapshotDir,
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	if f := cmd.Flags().Lookup("think-delay"); f != nil && f.Changed {
		cfg.ThinkDelay, _ = cmd.Flags().GetDuration("think-delay")
	}
	return cfg, cfg.Validate()
}
