// Package surge derives a bounded demand-surge factor from quote volume per
// city, tracked in redis over a rolling window.
package surge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/antarlabs/antar/internal/clock"
	"github.com/antarlabs/antar/internal/config"
)

// Provider reports and records demand per city. Factor never fails: ambient
// trouble (redis down, empty city) reads as the neutral 1.0.
type Provider interface {
	Observe(ctx context.Context, city string)
	Factor(ctx context.Context, city string) float64
}

var Module = fx.Module("surge",
	fx.Provide(NewTracker),
)

type Params struct {
	fx.In

	Redis *redis.Client
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
}

type Tracker struct {
	redis *redis.Client
	log   *zap.Logger
	clock clock.Clock

	window        time.Duration
	quotesPerStep int64
	stepIncrement float64
	maxSurge      float64
}

func NewTracker(p Params) Provider {
	t := &Tracker{
		redis:         p.Redis,
		log:           p.Log.Named("surge.tracker"),
		clock:         p.Clock,
		window:        p.Cfg.Surge.Window,
		quotesPerStep: p.Cfg.Surge.QuotesPerStep,
		stepIncrement: p.Cfg.Surge.StepIncrement,
		maxSurge:      p.Cfg.Surge.MaxSurge,
	}
	if t.window <= 0 {
		t.window = 10 * time.Minute
	}
	if t.quotesPerStep <= 0 {
		t.quotesPerStep = 50
	}
	if t.stepIncrement <= 0 {
		t.stepIncrement = 0.1
	}
	if t.maxSurge < 1 {
		t.maxSurge = 2.0
	}
	return t
}

// Observe counts one quote request against the city's current window.
func (t *Tracker) Observe(ctx context.Context, city string) {
	key := t.key(ctx, city)
	if key == "" {
		return
	}

	pipe := t.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		t.log.Warn("surge observe failed", zap.String("city", city), zap.Error(err))
	}
}

// Factor maps the current window's quote count to a surge scalar in
// [1.0, maxSurge].
func (t *Tracker) Factor(ctx context.Context, city string) float64 {
	key := t.key(ctx, city)
	if key == "" {
		return 1.0
	}

	count, err := t.redis.Get(ctx, key).Int64()
	if err != nil {
		if err != redis.Nil {
			t.log.Warn("surge read failed", zap.String("city", city), zap.Error(err))
		}
		return 1.0
	}

	factor := 1.0 + float64(count/t.quotesPerStep)*t.stepIncrement
	if factor > t.maxSurge {
		factor = t.maxSurge
	}
	return factor
}

func (t *Tracker) key(ctx context.Context, city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return ""
	}
	bucket := t.clock.Now(ctx).Unix() / int64(t.window.Seconds())
	return fmt.Sprintf("surge:%s:%d", city, bucket)
}
