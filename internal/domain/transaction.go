package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTransfer   TransactionType = "TRANSFER"
)

// ParseTransactionType converte o texto vindo da API.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionTransfer:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
}

// IsInter indica se o tipo move valor entre carteiras.
func (t TransactionType) IsInter() bool {
	return t == TransactionTransfer
}

// Transaction é o registro imutável do livro-razão.
//
// Intra (DEPOSIT/WITHDRAWAL): OwnerID e WalletID preenchidos; Amount na moeda da carteira.
// Inter (TRANSFER): SenderID/RecipientID e WalletID/RecipientWalletID preenchidos;
// Amount é o valor creditado ao destinatário, SenderAmount o valor debitado do remetente.
// Referências são ids, nunca ponteiros para outras entidades.
type Transaction struct {
	ID                string
	Type              TransactionType
	Amount            decimal.Decimal
	Currency          Currency
	OwnerID           int64
	SenderID          int64
	RecipientID       int64
	WalletID          int64
	RecipientWalletID int64
	SenderAmount      decimal.Decimal
	SenderCurrency    Currency
	CreatedAt         time.Time
}

// NewIntraTransaction monta o registro de depósito ou saque.
func NewIntraTransaction(txType TransactionType, wallet *Wallet, amount decimal.Decimal, at time.Time) *Transaction {
	return &Transaction{
		Type:      txType,
		Amount:    amount,
		Currency:  wallet.Currency,
		OwnerID:   wallet.OwnerID,
		WalletID:  wallet.ID,
		CreatedAt: at,
	}
}

// NewTransferTransaction monta o registro único de uma transferência.
func NewTransferTransaction(sender, recipient *Wallet, debited, credited decimal.Decimal, at time.Time) *Transaction {
	return &Transaction{
		Type:              TransactionTransfer,
		Amount:            credited,
		Currency:          recipient.Currency,
		SenderID:          sender.OwnerID,
		RecipientID:       recipient.OwnerID,
		WalletID:          sender.ID,
		RecipientWalletID: recipient.ID,
		SenderAmount:      debited,
		SenderCurrency:    sender.Currency,
		CreatedAt:         at,
	}
}
