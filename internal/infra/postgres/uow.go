package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Uow implementa gateway.TransactionManager
type Uow struct {
	pool *pgxpool.Pool
}

func NewUow(pool *pgxpool.Pool) *Uow {
	return &Uow{pool: pool}
}

// Run executa fn dentro de uma transação ACID. Erro ou pânico fazem Rollback.
// Uma transação já aberta no ctx é reaproveitada (fn passa a fazer parte dela).
func (u *Uow) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if existing, ok := gateway.TransactionFromContext(ctx); ok {
		if _, isPg := existing.(pgx.Tx); isPg {
			return fn(ctx)
		}
	}

	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel: pgx.ReadCommitted, // FOR UPDATE nas carteiras já serializa quem disputa a mesma linha
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		// Depois do Commit o Rollback devolve ErrTxClosed, que é esperado
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Error().Err(rbErr).Msg("Falha no rollback")
		}
	}()

	ctxWithTx := context.WithValue(ctx, gateway.TransactionKey, tx)

	if err := fn(ctxWithTx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
