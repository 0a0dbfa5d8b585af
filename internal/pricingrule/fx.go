package pricingrule

import (
	"go.uber.org/fx"

	"github.com/antarlabs/antar/internal/pricingrule/service"
)

var Module = fx.Module("pricingrule.service",
	fx.Provide(service.NewService),
)
