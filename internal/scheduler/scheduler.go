// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/antarlabs/antar/internal/clock"
	"github.com/antarlabs/antar/internal/config"
)

var Module = fx.Module("scheduler",
	fx.Provide(New),
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
}

type Scheduler struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   config.RetentionConfig
	clock clock.Clock
}

func New(p Params) *Scheduler {
	return &Scheduler{
		db:    p.DB,
		log:   p.Log.Named("scheduler"),
		cfg:   p.Cfg.Retention,
		clock: p.Clock,
	}
}

// RunForever ticks the maintenance jobs until the context is canceled.
func (s *Scheduler) RunForever(ctx context.Context) {
	interval := s.cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.CleanupQuoteRecordsJob(ctx); err != nil {
				s.log.Error("quote cleanup failed", zap.Error(err))
			}
		}
	}
}
