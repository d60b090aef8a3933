package usecase

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/shopspring/decimal"
)

type GetWalletOutput struct {
	ID        int64           `json:"id"`
	OwnerID   int64           `json:"owner_id"`
	Currency  domain.Currency `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt string          `json:"updated_at"`
}

type GetWalletUseCase struct {
	walletRepository gateway.WalletRepository
	userRepository   gateway.UserRepository
}

func NewGetWallet(walletRepo gateway.WalletRepository, userRepo gateway.UserRepository) *GetWalletUseCase {
	return &GetWalletUseCase{
		walletRepository: walletRepo,
		userRepository:   userRepo,
	}
}

// Execute só devolve a carteira para o próprio dono.
func (u *GetWalletUseCase) Execute(ctx context.Context, ownerID, walletID int64) (*GetWalletOutput, error) {
	wallet, err := u.walletRepository.GetByID(ctx, walletID)
	if err != nil {
		// Se for erro de "não encontrado", retornamos o erro de domínio
		return nil, wrapLookup(err, "erro ao buscar carteira %d", walletID)
	}
	if err := authorize(ctx, u.userRepository, wallet, ownerID); err != nil {
		return nil, err
	}
	return toGetWalletOutput(wallet), nil
}

func toGetWalletOutput(w *domain.Wallet) *GetWalletOutput {
	return &GetWalletOutput{
		ID:        w.ID,
		OwnerID:   w.OwnerID,
		Currency:  w.Currency,
		Balance:   w.Balance,
		UpdatedAt: w.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
