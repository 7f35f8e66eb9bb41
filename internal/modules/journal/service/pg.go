package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"

	"signal_bot/pkg/db"
)

// PG пишет журнал в postgres.
//
//	create table if not exists journal (
//	    id       bigserial primary key,
//	    at       timestamptz not null,
//	    kind     text not null,
//	    exchange text not null,
//	    symbol   text not null,
//	    action   text not null default '',
//	    payload  jsonb not null
//	);
type PG struct {
	db db.TxManager
}

func NewPG(tx db.TxManager) *PG {
	return &PG{db: tx}
}

func (s *PG) Append(
	ctx context.Context,
	e Entry,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("journal.PG.Append: %w", err)
		}
	}()

	payload, err := sonic.Marshal(e)
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			_, err := tx.Exec(ctxTx,
				`insert into journal (at, kind, exchange, symbol, action, payload)
				 values ($1, $2, $3, $4, $5, $6)`,
				e.At, e.Kind, e.Exchange, e.Symbol, e.Action, payload,
			)
			return err
		})
}
