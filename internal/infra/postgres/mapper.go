package postgres

import (
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/postgres/db"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Mapper: pgtype -> Go types
func toDomainWallet(w db.Wallet) *domain.Wallet {
	return &domain.Wallet{
		ID:       w.ID,
		OwnerID:  w.OwnerID,
		Currency: domain.Currency(w.Currency),
		Balance:  numericToDecimal(w.Balance),
		Version:  w.Version,
		//  pgtype.Timestamptz é uma struct, acessamos o valor .Time
		CreatedAt: w.CreatedAt.Time,
		UpdatedAt: w.UpdatedAt.Time,
	}
}

func toDomainUser(u db.User) *domain.User {
	return &domain.User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Time,
	}
}

func toDomainTransaction(t db.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:                uuidFromPgType(t.ID),
		Type:              domain.TransactionType(t.Type),
		Amount:            numericToDecimal(t.Amount),
		Currency:          domain.Currency(t.Currency),
		OwnerID:           t.OwnerID.Int64,
		SenderID:          t.SenderID.Int64,
		RecipientID:       t.RecipientID.Int64,
		WalletID:          t.WalletID,
		RecipientWalletID: t.RecipientWalletID.Int64,
		SenderAmount:      numericToDecimal(t.SenderAmount),
		SenderCurrency:    domain.Currency(t.SenderCurrency.String),
		CreatedAt:         t.CreatedAt.Time,
	}
}

func toDomainTransactions(rows []db.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainTransaction(row))
	}
	return out
}

// NUMERIC guarda coeficiente e expoente, exatamente como o decimal.
func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// Zero vira NULL: usado nas colunas que só existem para um tipo de registro.
func optionalNumeric(d decimal.Decimal) pgtype.Numeric {
	if d.IsZero() {
		return pgtype.Numeric{}
	}
	return decimalToNumeric(d)
}

func optionalInt8(v int64) pgtype.Int8 {
	return pgtype.Int8{Int64: v, Valid: v != 0}
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
