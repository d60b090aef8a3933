package gateway

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverter é a fonte de taxas plugável (tabela fixa ou serviço remoto).
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
}

// RateCache guarda taxas já obtidas de uma fonte remota.
type RateCache interface {
	Get(ctx context.Context, from, to domain.Currency) (decimal.Decimal, bool, error)
	Set(ctx context.Context, from, to domain.Currency, rate decimal.Decimal) error
}
