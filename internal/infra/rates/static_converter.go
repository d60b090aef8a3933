// Package rates implementa gateway.CurrencyConverter: tabela fixa ou serviço remoto.
package rates

import (
	"context"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/shopspring/decimal"
)

// StaticConverter usa o catálogo fixo do domínio. Nunca faz I/O.
type StaticConverter struct {
	catalog *domain.Catalog
}

func NewStaticConverter(catalog *domain.Catalog) *StaticConverter {
	if catalog == nil {
		catalog = domain.NewCatalog()
	}
	return &StaticConverter{catalog: catalog}
}

func (c *StaticConverter) Convert(_ context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	for _, cur := range []domain.Currency{from, to} {
		if c.catalog.Rate(cur).IsZero() {
			return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, cur)
		}
	}
	return c.catalog.Convert(amount, from, to), nil
}
