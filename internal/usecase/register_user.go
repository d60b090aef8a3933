package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
)

type RegisterUserInput struct {
	Username string
	Currency domain.Currency // vazio = INR
}

type RegisterUserOutput struct {
	UserID   int64               `json:"user_id"`
	Username string              `json:"username"`
	Wallet   *CreateWalletOutput `json:"wallet"`
}

// RegisterUserUseCase cria o usuário e a primeira carteira juntos.
type RegisterUserUseCase struct {
	userRepository     gateway.UserRepository
	walletRepository   gateway.WalletRepository
	transactionManager gateway.TransactionManager
}

func NewRegisterUser(userRepo gateway.UserRepository, walletRepo gateway.WalletRepository, txManager gateway.TransactionManager) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepository:     userRepo,
		walletRepository:   walletRepo,
		transactionManager: txManager,
	}
}

func (u *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	username, err := domain.NormalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	currency := input.Currency
	if currency == "" {
		currency = domain.ReferenceCurrency
	}

	var (
		user   *domain.User
		wallet *domain.Wallet
	)
	err = u.transactionManager.Run(ctx, func(contextWithTx context.Context) error {
		transactionObject, ok := gateway.TransactionFromContext(contextWithTx)
		if !ok {
			return fmt.Errorf("erro crítico: transação não encontrada no contexto")
		}
		userRepoTx := u.userRepository.WithTx(transactionObject)
		walletRepoTx := u.walletRepository.WithTx(transactionObject)

		_, err := userRepoTx.GetByUsername(contextWithTx, username)
		switch {
		case err == nil:
			return domain.ErrUserAlreadyExists
		case !errors.Is(err, domain.ErrUserNotFound):
			return fmt.Errorf("erro ao buscar usuário: %w", err)
		}

		// A constraint UNIQUE do banco cobre a corrida entre dois cadastros simultâneos.
		user = &domain.User{Username: username}
		if err := userRepoTx.Create(contextWithTx, user); err != nil {
			return err
		}

		wallet = domain.NewWallet(user.ID, currency)
		if err := walletRepoTx.Create(contextWithTx, wallet); err != nil {
			return fmt.Errorf("erro ao criar carteira: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterUserOutput{
		UserID:   user.ID,
		Username: user.Username,
		Wallet:   toCreateWalletOutput(wallet),
	}, nil
}
