package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tictactoe version "+strings.TrimSpace(tictactoe.Version)+"\n", out)
}

func TestGraphCommand(t *testing.T) {
	tests := []struct {
		format string
		prefix string
	}{
		{format: "mermaid", prefix: "graph TD"},
		{format: "dot", prefix: "digraph TicTacToe {"},
		{format: "json", prefix: "["},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "graph", "--format", tt.format)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tt.prefix), out)
		})
	}
}

func TestGraphCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "graph", "--format", "svg")
	assert.ErrorContains(t, err, "unknown format")
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Setenv("TICTACTOE_ADDR", ":9999")
	require.NoError(t, serveCmd.Flags().Set("addr", "127.0.0.1:7000"))
	t.Cleanup(func() {
		_ = serveCmd.Flags().Set("addr", "")
		serveCmd.Flags().Lookup("addr").Changed = false
	})

	cfg, err := loadConfig(serveCmd)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
}
