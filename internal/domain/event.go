package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LedgerExchange            = "ledger_events"
	TransactionCreatedRouting = "transaction.created"
)

// TransactionEvent é publicado depois do commit de cada transação.
type TransactionEvent struct {
	TransactionID     string          `json:"transaction_id"`
	Type              TransactionType `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          Currency        `json:"currency"`
	OwnerID           int64           `json:"owner_id,omitempty"`
	SenderID          int64           `json:"sender_id,omitempty"`
	RecipientID       int64           `json:"recipient_id,omitempty"`
	WalletID          int64           `json:"wallet_id"`
	RecipientWalletID int64           `json:"recipient_wallet_id,omitempty"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// NewTransactionEvent converte o registro persistido no evento de saída.
func NewTransactionEvent(tx *Transaction) TransactionEvent {
	return TransactionEvent{
		TransactionID:     tx.ID,
		Type:              tx.Type,
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		OwnerID:           tx.OwnerID,
		SenderID:          tx.SenderID,
		RecipientID:       tx.RecipientID,
		WalletID:          tx.WalletID,
		RecipientWalletID: tx.RecipientWalletID,
		Status:            "completed",
		CreatedAt:         tx.CreatedAt,
	}
}
