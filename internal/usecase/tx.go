package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/memberledger/internal/domain"
)

// runInTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on every other exit, panics included.
func runInTx(ctx context.Context, txManager TransactionManager, fn func(tx Transaction) error) (err error) {
	tx, err := txManager.Begin(ctx)
	if err != nil {
		return domain.NewStorageError("begin transaction", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			zerolog.Ctx(ctx).Debug().Err(rbErr).Msg("rollback failed")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.NewStorageError("commit transaction", err)
	}
	committed = true

	return nil
}
