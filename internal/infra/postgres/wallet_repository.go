package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/postgres/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletRepository implementa gateway.WalletRepository usando pgx/v5
type WalletRepository struct {
	db      *pgxpool.Pool //  Usamos pgxpool em vez de sql.DB
	queries *db.Queries
}

// NewWalletRepository cria uma nova instância
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{
		db:      pool,
		queries: db.New(pool),
	}
}

// Create insere a carteira e devolve ID, versão e datas no próprio objeto
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	row, err := r.queries.CreateWallet(ctx, db.CreateWalletParams{
		OwnerID:  wallet.OwnerID,
		Currency: wallet.Currency.String(),
		Balance:  decimalToNumeric(wallet.Balance),
	})
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	*wallet = *toDomainWallet(row)
	return nil
}

// GetByID busca uma carteira
func (r *WalletRepository) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	modelWallet, err := r.queries.GetWallet(ctx, id)
	if err != nil {
		// pgx retorna pgx.ErrNoRows, diferente de sql.ErrNoRows
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return toDomainWallet(modelWallet), nil
}

// 🔐 Implementação do Lock
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Wallet, error) {
	// Chama a query com "FOR UPDATE"
	modelWallet, err := r.queries.GetWalletForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return toDomainWallet(modelWallet), nil
}

func (r *WalletRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Wallet, error) {
	modelWallet, err := r.queries.GetOldestWalletByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by owner: %w", err)
	}
	return toDomainWallet(modelWallet), nil
}

func (r *WalletRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Wallet, error) {
	rows, err := r.queries.ListWalletsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	wallets := make([]*domain.Wallet, 0, len(rows))
	for _, row := range rows {
		wallets = append(wallets, toDomainWallet(row))
	}
	return wallets, nil
}

// 💾 Save grava o saldo já validado pelo domínio. O CHECK (balance >= 0) é a última barreira.
func (r *WalletRepository) Save(ctx context.Context, wallet *domain.Wallet) error {
	row, err := r.queries.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
		ID:      wallet.ID,
		Balance: decimalToNumeric(wallet.Balance),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrWalletNotFound
		}
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	wallet.Version = row.Version
	wallet.UpdatedAt = row.UpdatedAt.Time
	return nil
}

// WithTx retorna uma cópia do repositório usando uma transação específica
func (r *WalletRepository) WithTx(tx gateway.TransactionObject) gateway.WalletRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &WalletRepository{
		db:      r.db,
		queries: r.queries.WithTx(pgTx),
	}
}
