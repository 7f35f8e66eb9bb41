package engine

import (
	"signal_bot/internal/modules/engine/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("engine",
		fx.Provide(
			service.NewEngine, // *service.Engine (нужны MarketData и Execution)
		),
	)
}
