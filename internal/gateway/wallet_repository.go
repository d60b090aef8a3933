package gateway

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
)

// WalletRepository define o contrato para persistência de carteiras.
// O Usecase só interage com isso, sem saber se é Postgres ou memória.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id int64) (*domain.Wallet, error)

	// Lock Pessimista: Retorna a wallet travando a linha até o fim da transação
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Wallet, error)

	// GetByOwnerID retorna a carteira mais antiga do usuário.
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Wallet, error)
	ListByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Wallet, error)

	// Save persiste saldo e versão. Nunca altera moeda nem dono.
	Save(ctx context.Context, wallet *domain.Wallet) error

	// WithTx permite que o repositório participe de uma transação iniciada no nível superior
	WithTx(tx TransactionObject) WalletRepository
}
