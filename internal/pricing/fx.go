package pricing

import (
	"go.uber.org/fx"

	"github.com/antarlabs/antar/internal/config"
	"github.com/antarlabs/antar/internal/pricing/engine"
)

var Module = fx.Module("pricing.engine",
	fx.Provide(NewEngine),
)

func NewEngine(cfg config.Config) *engine.Engine {
	return engine.New(engine.Options{
		Tables:           engine.DefaultTables(),
		VariableCost:     cfg.Engine.VariableCost,
		FixedMonthlyCost: cfg.Engine.FixedMonthlyCost,
		FeeCapPercent:    cfg.Engine.FeeCapPercent,
	})
}
