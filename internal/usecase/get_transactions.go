package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/shopspring/decimal"
)

type GetTransactionsInput struct {
	OwnerID  int64
	WalletID int64
	Type     *domain.TransactionType // nil = todos os tipos
}

// TransactionView é o formato exposto do histórico.
type TransactionView struct {
	ID                string                 `json:"id"`
	Type              domain.TransactionType `json:"type"`
	Amount            decimal.Decimal        `json:"amount"`
	Currency          domain.Currency        `json:"currency"`
	OwnerID           int64                  `json:"owner_id,omitempty"`
	SenderID          int64                  `json:"sender_id,omitempty"`
	RecipientID       int64                  `json:"recipient_id,omitempty"`
	WalletID          int64                  `json:"wallet_id"`
	RecipientWalletID int64                  `json:"recipient_wallet_id,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}

type GetTransactionsUseCase struct {
	walletRepository      gateway.WalletRepository
	userRepository        gateway.UserRepository
	transactionRepository gateway.TransactionRepository
}

func NewGetTransactions(
	walletRepo gateway.WalletRepository,
	userRepo gateway.UserRepository,
	transactionRepo gateway.TransactionRepository,
) *GetTransactionsUseCase {
	return &GetTransactionsUseCase{
		walletRepository:      walletRepo,
		userRepository:        userRepo,
		transactionRepository: transactionRepo,
	}
}

// Execute monta o histórico do dono, mais recente primeiro.
func (u *GetTransactionsUseCase) Execute(ctx context.Context, input GetTransactionsInput) ([]TransactionView, error) {
	wallet, err := u.walletRepository.GetByID(ctx, input.WalletID)
	if err != nil {
		return nil, wrapLookup(err, "erro ao buscar carteira %d", input.WalletID)
	}
	if err := authorize(ctx, u.userRepository, wallet, input.OwnerID); err != nil {
		return nil, err
	}

	var records []*domain.Transaction

	if input.Type == nil || !input.Type.IsInter() {
		intra, err := u.transactionRepository.FindByOwnerID(ctx, input.OwnerID, input.Type)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar depósitos e saques: %w", err)
		}
		records = append(records, intra...)
	}

	if input.Type == nil || input.Type.IsInter() {
		sent, err := u.transactionRepository.FindBySenderID(ctx, input.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar transferências enviadas: %w", err)
		}
		received, err := u.transactionRepository.FindByRecipientID(ctx, input.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar transferências recebidas: %w", err)
		}
		records = append(records, sent...)
		records = append(records, received...)
	}

	views := toViews(records)
	if len(views) == 0 {
		return nil, domain.ErrNoTransactionsFound
	}
	return views, nil
}

// toViews remove duplicatas (transferência entre carteiras do mesmo dono) e ordena.
func toViews(records []*domain.Transaction) []TransactionView {
	seen := make(map[string]struct{}, len(records))
	views := make([]TransactionView, 0, len(records))
	for _, tx := range records {
		if _, dup := seen[tx.ID]; dup {
			continue
		}
		seen[tx.ID] = struct{}{}
		views = append(views, TransactionView{
			ID:                tx.ID,
			Type:              tx.Type,
			Amount:            tx.Amount,
			Currency:          tx.Currency,
			OwnerID:           tx.OwnerID,
			SenderID:          tx.SenderID,
			RecipientID:       tx.RecipientID,
			WalletID:          tx.WalletID,
			RecipientWalletID: tx.RecipientWalletID,
			CreatedAt:         tx.CreatedAt,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].ID > views[j].ID
	})
	return views
}
