package config

import "go.uber.org/fx"

// Module отдаёт единый *Config остальным модулям: yaml плюс env поверх.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
		),
	)
}
