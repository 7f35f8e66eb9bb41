package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"signal_bot/pkg/logger"
)

type PoolConfig struct {
	DSN string
}

func NewPool(ctx context.Context, conf PoolConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, conf.DSN)
}

// PgTxManager — транзакции поверх одного пишущего пула, реплик нет.
type PgTxManager struct {
	pool *pgxpool.Pool
}

func NewPgTxManager(pool *pgxpool.Pool) *PgTxManager {
	return &PgTxManager{pool: pool}
}

func (m *PgTxManager) Close() {
	m.pool.Close()
}

// RunMaster выполняет fn в транзакции read committed. Ошибка fn
// откатывает транзакцию, паника откатывает и летит дальше.
func (m *PgTxManager) RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("tx panic: %v", p)
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		return errors.Wrap(err, "tx fn")
	}
	return errors.Wrap(tx.Commit(ctx), "commit tx")
}
