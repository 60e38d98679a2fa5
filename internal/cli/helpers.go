// Package cli holds the command implementations shared by cmd/tictactoe:
// interactive play, the HTTP server and the MCP stdio server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tictactoe"
	"github.com/aretw0/tictactoe/internal/config"
	"github.com/aretw0/tictactoe/internal/logging"
	"github.com/aretw0/tictactoe/pkg/adapters/file"
	"github.com/aretw0/tictactoe/pkg/adapters/memory"
	"github.com/aretw0/tictactoe/pkg/adapters/redis"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/persistence/middleware"
	"github.com/aretw0/tictactoe/pkg/ports"
)

// NewLogger builds the application logger on stderr so stdout stays free
// for the board or a protocol stream.
func NewLogger(level string) *slog.Logger {
	return logging.NewWithWriter(os.Stderr, logging.ParseLevel(level))
}

// GameOptions maps cfg onto game options.
func GameOptions(cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) []tictactoe.Option {
	opts := []tictactoe.Option{
		tictactoe.WithLogger(logger),
		tictactoe.WithThinkDelay(cfg.ThinkDelay),
		tictactoe.WithHopLimit(cfg.HopLimit),
		tictactoe.WithErrorHandler(func(err error) {
			logger.Error("game error", "err", err)
		}),
	}
	if len(hooks) > 0 {
		opts = append(opts, tictactoe.WithLifecycleHooks(domain.ComposeHooks(hooks...)))
	}
	return opts
}

// NewStore picks the snapshot store: redis when cfg names a redis address,
// a directory of JSON files when it names a snapshot directory, memory
// otherwise. The store is wrapped in mws; the returned closer releases the
// connection.
func NewStore(ctx context.Context, cfg config.Config, logger *slog.Logger, mws ...middleware.Middleware) (ports.SnapshotStore, func() error, error) {
	noop := func() error { return nil }
	switch {
	case cfg.RedisAddr != "":
	case cfg.SnapshotDir != "":
		logger.Info("using file snapshot store", "dir", cfg.SnapshotDir)
		return middleware.Chain(file.NewStore(cfg.SnapshotDir), mws...), noop, nil
	default:
		logger.Debug("using in-memory snapshot store")
		return middleware.Chain(memory.NewStore(), mws...), noop, nil
	}

	store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
		redis.WithTTL(cfg.SnapshotTTL),
		redis.WithPrefix(cfg.KeyPrefix),
	)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("redis %s unreachable: %w", cfg.RedisAddr, err)
	}
	logger.Info("using redis snapshot store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return middleware.Chain(store, mws...), store.Close, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

// handleExecutionError turns interruptions into a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
