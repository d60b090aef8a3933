package gateway

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
)

// TransactionRepository é o livro-razão: só insere e consulta.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error

	// FindByOwnerID retorna depósitos e saques do dono; txType nil traz ambos.
	FindByOwnerID(ctx context.Context, ownerID int64, txType *domain.TransactionType) ([]*domain.Transaction, error)
	FindBySenderID(ctx context.Context, senderID int64) ([]*domain.Transaction, error)
	FindByRecipientID(ctx context.Context, recipientID int64) ([]*domain.Transaction, error)

	// WithTx segue o mesmo padrão da Wallet para participar da transação atômica
	WithTx(tx TransactionObject) TransactionRepository
}
