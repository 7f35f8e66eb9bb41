package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager прячет пул от хранилищ: им достаётся только pgx.Tx.
type TxManager interface {
	RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error
}
