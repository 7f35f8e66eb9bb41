package notify

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	enginesvc "signal_bot/internal/modules/engine/service"
	"signal_bot/pkg/logger"
)

// Module выбирает нотифайер: Telegram при заданном токене, иначе лог.
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, exec enginesvc.Execution) (Notifier, error) {
				if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
					logger.Info("notify: telegram не настроен, уведомления в лог")
					return NewStdout(), nil
				}

				t, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, exec.Balance)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						return t.Start(ctx)
					},
					OnStop: func(context.Context) error {
						t.Stop()
						return nil
					},
				})
				return t, nil
			},
		),
	)
}
