package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet representa a carteira do usuário.
// Clean Architecture: Esta entidade não sabe o que é JSON nem SQL.
// O saldo só muda via Deposit/Withdraw e nunca fica negativo.
type Wallet struct {
	ID        int64
	OwnerID   int64
	Currency  Currency
	Balance   decimal.Decimal
	Version   int32 // Incrementado a cada Save
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWallet cria uma carteira zerada para o dono informado.
func NewWallet(ownerID int64, currency Currency) *Wallet {
	return &Wallet{
		OwnerID:  ownerID,
		Currency: currency,
		Balance:  decimal.Zero,
	}
}

// HasSufficientFunds valida se a carteira pode pagar antes mesmo de tocar no DB
func (w *Wallet) HasSufficientFunds(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Deposit recebe um valor já expresso na moeda da carteira.
func (w *Wallet) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Withdraw recebe um valor já expresso na moeda da carteira.
func (w *Wallet) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !w.HasSufficientFunds(amount) {
		return ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

func (w *Wallet) OwnedBy(user *User) bool {
	return user != nil && w.OwnerID == user.ID
}
