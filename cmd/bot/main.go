package main

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/engine"
	"signal_bot/internal/modules/exchange"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/journal"
	"signal_bot/internal/modules/postgres"
	"signal_bot/internal/modules/strategy"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

func main() {
	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		fx.Invoke(initObservability),
		postgres.Module(),
		exchange.Module(),
		strategy.Module(),
		engine.Module(),
		journal.Module(),
		health.Module(),
		notify.Module(),
		runner.Module(),
	)
	app.Run()
}

// initObservability: логгер и, если настроен, jaeger. Первый invoke,
// чтобы остальные провайдеры могли логировать.
func initObservability(lc fx.Lifecycle, cfg *config.Config) error {
	logger.SetServiceName("signal_bot")
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Sync()
			return nil
		},
	})

	if cfg.Service.JaegerHost == "" {
		return nil
	}
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Service: "signal_bot",
		Host:    cfg.Service.JaegerHost,
		Port:    cfg.Service.JaegerPort,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}
