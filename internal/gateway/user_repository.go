package gateway

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
)

// UserRepository é o diretório de donos de carteira.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByWallet(ctx context.Context, wallet *domain.Wallet) (*domain.User, error)
	WithTx(tx TransactionObject) UserRepository
}
