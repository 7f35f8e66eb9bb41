package journal

import (
	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/journal/service"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"
)

// Module выбирает хранилище журнала по конфигу.
func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			func(cfg *config.Config, txm *db.PgTxManager) service.Journal {
				if txm != nil {
					return service.NewPG(txm)
				}
				if cfg.JournalPath != "" {
					return service.NewFile(cfg.JournalPath)
				}
				logger.Info("journal disabled: no db_dsn and no journal_path")
				return service.Noop{}
			},
		),
	)
}
