package usecase

import (
	"context"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
)

type ListWalletsUseCase struct {
	walletRepository gateway.WalletRepository
	userRepository   gateway.UserRepository
}

func NewListWallets(walletRepo gateway.WalletRepository, userRepo gateway.UserRepository) *ListWalletsUseCase {
	return &ListWalletsUseCase{
		walletRepository: walletRepo,
		userRepository:   userRepo,
	}
}

func (u *ListWalletsUseCase) Execute(ctx context.Context, ownerID int64) ([]*GetWalletOutput, error) {
	if _, err := u.userRepository.GetByID(ctx, ownerID); err != nil {
		return nil, wrapLookup(err, "erro ao buscar usuário %d", ownerID)
	}

	wallets, err := u.walletRepository.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar carteiras: %w", err)
	}

	out := make([]*GetWalletOutput, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, toGetWalletOutput(w))
	}
	return out, nil
}
