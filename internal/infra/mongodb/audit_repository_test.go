package mongodb

import (
	"testing"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewAuditLog(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := domain.NewTransactionEvent(&domain.Transaction{
		ID:                "tx-1",
		Type:              domain.TransactionTransfer,
		Amount:            decimal.RequireFromString("92.22"),
		Currency:          domain.EUR,
		SenderID:          1,
		RecipientID:       2,
		WalletID:          10,
		RecipientWalletID: 20,
		CreatedAt:         created,
	})

	log := NewAuditLog(event)

	assert.Equal(t, "tx-1", log.TransactionID)
	assert.Equal(t, "TRANSFER", log.Type)
	assert.Equal(t, "92.22", log.Amount)
	assert.Equal(t, "EUR", log.Currency)
	assert.Equal(t, int64(1), log.SenderID)
	assert.Equal(t, int64(20), log.RecipientWalletID)
	assert.Equal(t, "completed", log.Status)
	assert.Equal(t, created, log.CreatedAt)
	assert.True(t, log.ProcessedAt.IsZero())
}
