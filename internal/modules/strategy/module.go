package strategy

import (
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/strategy/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			// service.Generator по модели из конфига
			func(cfg *config.Config) (service.Generator, error) {
				return service.New(cfg.DefaultModel, service.Params{
					Fast: cfg.DefaultFastWindow,
					Slow: cfg.DefaultSlowWindow,
					Seed: cfg.RandomSeed,
				})
			},
		),
	)
}
