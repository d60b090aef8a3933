package memory

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
)

// Uow implementa gateway.TransactionManager sobre o Store.
type Uow struct {
	store *Store
}

func NewUow(store *Store) *Uow {
	return &Uow{store: store}
}

// Run executa fn dentro de um Tx. Erro ou pânico descartam o stage; sucesso aplica tudo.
func (u *Uow) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if existing, ok := gateway.TransactionFromContext(ctx); ok {
		if _, isMem := existing.(*Tx); isMem {
			return fn(ctx)
		}
	}

	tx := u.store.begin()
	defer tx.release()

	ctxWithTx := context.WithValue(ctx, gateway.TransactionKey, tx)
	if err := fn(ctxWithTx); err != nil {
		return err
	}
	return tx.commit()
}
