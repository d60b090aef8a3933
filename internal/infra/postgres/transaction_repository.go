package postgres

import (
	"context"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/postgres/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db      *pgxpool.Pool
	queries *db.Queries
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		db:      pool,
		queries: db.New(pool),
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	id := uuid.New()

	row, err := r.queries.CreateTransaction(ctx, newCreateTransactionParams(id, tx))
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// Atualiza o ID e CreatedAt gerados de volta no objeto de domínio
	tx.ID = id.String()
	tx.CreatedAt = row.CreatedAt.Time

	return nil
}

// newCreateTransactionParams converte o domínio para o formato do SQLC.
// CreatedAt zerado vai como NULL e o banco usa now().
func newCreateTransactionParams(id uuid.UUID, tx *domain.Transaction) db.CreateTransactionParams {
	return db.CreateTransactionParams{
		ID:                pgtype.UUID{Bytes: id, Valid: true},
		Type:              string(tx.Type),
		Amount:            decimalToNumeric(tx.Amount),
		Currency:          tx.Currency.String(),
		OwnerID:           optionalInt8(tx.OwnerID),
		SenderID:          optionalInt8(tx.SenderID),
		RecipientID:       optionalInt8(tx.RecipientID),
		WalletID:          tx.WalletID,
		RecipientWalletID: optionalInt8(tx.RecipientWalletID),
		SenderAmount:      optionalNumeric(tx.SenderAmount),
		SenderCurrency:    optionalText(string(tx.SenderCurrency)),
		CreatedAt:         pgtype.Timestamptz{Time: tx.CreatedAt, Valid: !tx.CreatedAt.IsZero()},
	}
}

func (r *TransactionRepository) FindByOwnerID(ctx context.Context, ownerID int64, txType *domain.TransactionType) ([]*domain.Transaction, error) {
	params := db.ListIntraTransactionsByOwnerParams{OwnerID: optionalInt8(ownerID)}
	if txType != nil {
		params.Type = pgtype.Text{String: string(*txType), Valid: true}
	}
	rows, err := r.queries.ListIntraTransactionsByOwner(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner transactions: %w", err)
	}
	return toDomainTransactions(rows), nil
}

func (r *TransactionRepository) FindBySenderID(ctx context.Context, senderID int64) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsBySender(ctx, optionalInt8(senderID))
	if err != nil {
		return nil, fmt.Errorf("failed to list sent transfers: %w", err)
	}
	return toDomainTransactions(rows), nil
}

func (r *TransactionRepository) FindByRecipientID(ctx context.Context, recipientID int64) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByRecipient(ctx, optionalInt8(recipientID))
	if err != nil {
		return nil, fmt.Errorf("failed to list received transfers: %w", err)
	}
	return toDomainTransactions(rows), nil
}

func (r *TransactionRepository) WithTx(tx gateway.TransactionObject) gateway.TransactionRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &TransactionRepository{
		db:      r.db,
		queries: r.queries.WithTx(pgTx),
	}
}

func uuidFromPgType(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}
