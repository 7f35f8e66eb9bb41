package exchange

import (
	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	enginesvc "signal_bot/internal/modules/engine/service"
)

// Module отдаёт порты площадки, выбранной в конфиге.
func Module() fx.Option {
	return fx.Module("exchange",
		fx.Provide(
			func(cfg *config.Config) (enginesvc.MarketData, enginesvc.Execution, error) {
				p, err := New(cfg)
				if err != nil {
					return nil, nil, err
				}
				return p.MarketData, p.Execution, nil
			},
		),
	)
}
