package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/ports"
)

// NewLoggingMiddleware logs failed store calls at Warn and successful writes
// at Debug.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

type loggingMiddleware struct {
	next   ports.SnapshotStore
	logger *slog.Logger
}

func (s *loggingMiddleware) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	err := s.next.Save(ctx, sessionID, snap)
	if err != nil {
		s.logger.Warn("snapshot save failed", "session_id", sessionID, "seq", snap.Seq, "err", err)
		return err
	}
	s.logger.Debug("snapshot saved", "session_id", sessionID, "seq", snap.Seq, "state", snap.StateName)
	return nil
}

func (s *loggingMiddleware) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	snap, err := s.next.Load(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.logger.Warn("snapshot load failed", "session_id", sessionID, "err", err)
	}
	return snap, err
}

func (s *loggingMiddleware) Delete(ctx context.Context, sessionID string) error {
	err := s.next.Delete(ctx, sessionID)
	if err != nil {
		s.logger.Warn("snapshot delete failed", "session_id", sessionID, "err", err)
	}
	return err
}

func (s *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	ids, err := s.next.List(ctx)
	if err != nil {
		s.logger.Warn("snapshot list failed", "err", err)
	}
	return ids, err
}
