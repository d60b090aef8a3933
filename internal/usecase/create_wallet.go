package usecase

import (
	"context"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/shopspring/decimal"
)

type CreateWalletInput struct {
	OwnerID  int64
	Currency domain.Currency
}

type CreateWalletOutput struct {
	ID       int64           `json:"id"`
	OwnerID  int64           `json:"owner_id"`
	Currency domain.Currency `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

type CreateWalletUseCase struct {
	walletRepo gateway.WalletRepository
	userRepo   gateway.UserRepository
}

func NewCreateWallet(walletRepo gateway.WalletRepository, userRepo gateway.UserRepository) *CreateWalletUseCase {
	return &CreateWalletUseCase{
		walletRepo: walletRepo,
		userRepo:   userRepo,
	}
}

func (uc *CreateWalletUseCase) Execute(ctx context.Context, input CreateWalletInput) (*CreateWalletOutput, error) {
	if _, err := uc.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		return nil, wrapLookup(err, "erro ao buscar usuário %d", input.OwnerID)
	}

	// A criação de wallet é uma operação atômica simples (um insert),
	// então não precisamos abrir uma transação complexa (Begin/Commit) aqui.
	wallet := domain.NewWallet(input.OwnerID, input.Currency)
	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("erro ao criar carteira: %w", err)
	}

	return toCreateWalletOutput(wallet), nil
}

func toCreateWalletOutput(w *domain.Wallet) *CreateWalletOutput {
	return &CreateWalletOutput{
		ID:       w.ID,
		OwnerID:  w.OwnerID,
		Currency: w.Currency,
		Balance:  w.Balance,
	}
}
