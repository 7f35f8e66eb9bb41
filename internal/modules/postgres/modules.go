package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/db"
)

// Module поднимает пул postgres. Без db_dsn отдаёт nil-менеджер,
// журнал тогда падает обратно в файл.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, lc fx.Lifecycle, cfg *config.Config) (*db.PgTxManager, error) {
				if cfg.DB == "" {
					return nil, nil
				}

				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}

				err = poolMaster.Ping(ctx)
				if err != nil {
					return nil, err
				}

				m := db.NewPgTxManager(poolMaster)
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						m.Close()
						return nil
					},
				})
				return m, nil
			},
		),
	)
}
