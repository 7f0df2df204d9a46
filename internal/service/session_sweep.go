package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunSessionSweeper deletes idle sessions until ctx is cancelled.
func (s *Service) RunSessionSweeper(ctx context.Context) {
	interval := s.config.Session.SweepInterval
	if interval <= 0 || s.config.Session.MaxAge <= 0 || s.store == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepIdleSessions(ctx)
		}
	}
}

func (s *Service) sweepIdleSessions(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cutoff := s.now().Add(-s.config.Session.MaxAge)
	deleted, err := s.store.DeleteSessionsIdleSince(sweepCtx, cutoff)
	if err != nil {
		s.logger.Warn("session sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.logger.Info("expired idle sessions", zap.Int64("count", deleted))
	}
}
