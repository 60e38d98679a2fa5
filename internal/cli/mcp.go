package cli

import (
	"context"
	"io"

	"github.com/aretw0/tictactoe/internal/config"
	"github.com/aretw0/tictactoe/pkg/adapters/mcp"
	"github.com/aretw0/tictactoe/pkg/session"
)

// RunMCP serves the game tools over JSON-RPC on in/out until ctx is done.
// Logs go to stderr so they never corrupt the protocol stream.
func RunMCP(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	logger := NewLogger(cfg.LogLevel)

	store, closeStore, err := NewStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewManager(store,
		session.WithLogger(logger),
		session.WithGameOptions(GameOptions(cfg, logger)...),
	)
	defer sessions.Close()

	logger.Info("starting MCP server (stdio)")
	return handleExecutionError(mcp.NewServer(sessions, mcp.WithLogger(logger)).Listen(ctx, in, out))
}
