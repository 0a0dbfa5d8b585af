// Package seed installs the default pricing rules on first run.
package seed

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
)

var Module = fx.Module("seed",
	fx.Invoke(Run),
)

// Run inserts the starter rule set when the pricing_rules table is empty.
// Existing rules are never touched.
func Run(db *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&ruledomain.PricingRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("pricing rules already present, skipping seed", zap.Int64("count", count))
		return nil
	}

	now := time.Now().UTC()
	rules := []ruledomain.PricingRule{
		{
			ID:            genID.Generate(),
			Name:          "weekday-rush-hour",
			Description:   "Boost driver fees during rush hour in congested cities",
			Active:        true,
			Priority:      100,
			Cities:        []string{"jakarta", "surabaya", "bandung", "medan"},
			TimesOfDay:    []string{"morning_rush", "evening_rush"},
			Multiplier:    1.2,
			MaxMultiplier: 3.0,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            genID.Generate(),
			Name:          "storm-surge",
			Description:   "Extra incentive when storms keep drivers off the road",
			Active:        true,
			Priority:      90,
			Weather:       []string{"heavy_rain", "storm"},
			Multiplier:    1.3,
			MaxMultiplier: 3.5,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:             genID.Generate(),
			Name:           "high-demand-floor",
			Description:    "Catch-all boost once tracked demand is already elevated",
			Active:         true,
			Priority:       10,
			MinDemandSurge: 1.5,
			Multiplier:     1.1,
			MaxMultiplier:  2.5,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}

	if err := db.WithContext(ctx).Create(&rules).Error; err != nil {
		return err
	}

	log.Info("seeded default pricing rules", zap.Int("count", len(rules)))
	return nil
}
