package scheduler

import (
	"context"

	"go.uber.org/zap"

	"github.com/antarlabs/antar/internal/quote/repository"
)

// CleanupQuoteRecordsJob deletes quote audit records older than the
// configured retention window.
func (s *Scheduler) CleanupQuoteRecordsJob(ctx context.Context) error {
	retentionDays := s.cfg.QuoteRetentionDays
	if retentionDays <= 0 {
		s.log.Info("quote retention disabled or invalid", zap.Int("days", retentionDays))
		return nil
	}

	cutoff := s.clock.Now(ctx).AddDate(0, 0, -retentionDays)
	s.log.Info("cleaning up quote records", zap.Time("cutoff", cutoff))

	repo := repository.NewRepository()
	deleted, err := repo.DeleteOlderThan(ctx, s.db, cutoff)
	if err != nil {
		return err
	}

	s.log.Info("cleanup quote records completed", zap.Int64("deleted", deleted))
	return nil
}
