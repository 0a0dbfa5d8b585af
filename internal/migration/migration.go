// Package migration creates and updates the database schema.
package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
	quotedomain "github.com/antarlabs/antar/internal/quote/domain"
)

var Module = fx.Module("migration",
	fx.Invoke(Run),
)

func Run(db *gorm.DB, log *zap.Logger) error {
	log.Info("running schema migration")
	return db.AutoMigrate(
		&ruledomain.PricingRule{},
		&quotedomain.QuoteRecord{},
	)
}
