package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency é o código ISO de uma moeda suportada.
type Currency string

const (
	INR Currency = "INR"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// ReferenceCurrency é a moeda de referência dos fatores de conversão.
const ReferenceCurrency = INR

// Casas decimais mantidas após cada conversão (arredondamento bancário).
const MoneyScale int32 = 2

var conversionRates = map[Currency]decimal.Decimal{
	INR: decimal.NewFromInt(1),
	USD: decimal.NewFromInt(83),
	EUR: decimal.NewFromInt(90),
}

// ParseCurrency valida o código na borda do sistema.
// Depois disso, uma Currency é sempre suportada.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := conversionRates[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// SupportedCurrencies retorna os códigos do catálogo.
func SupportedCurrencies() []Currency {
	return []Currency{INR, USD, EUR}
}

func (c Currency) String() string {
	return string(c)
}

// Catalog é a tabela fixa de fatores de conversão.
type Catalog struct {
	rates map[Currency]decimal.Decimal
}

// NewCatalog cria o catálogo padrão (INR=1, USD=83, EUR=90).
func NewCatalog() *Catalog {
	return &Catalog{rates: conversionRates}
}

// Rate retorna o fator da moeda em relação a ReferenceCurrency.
func (c *Catalog) Rate(currency Currency) decimal.Decimal {
	return c.rates[currency]
}

// Convert aplica amount * rate(from) / rate(to), arredondando half-even em MoneyScale casas.
func (c *Catalog) Convert(amount decimal.Decimal, from, to Currency) decimal.Decimal {
	if from == to {
		return amount.RoundBank(MoneyScale)
	}
	return amount.Mul(c.rates[from]).Div(c.rates[to]).RoundBank(MoneyScale)
}

// ApplyRate multiplica o valor pela taxa e aplica a política de arredondamento.
// Usado também pelos conversores remotos, para que todos arredondem igual.
func ApplyRate(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).RoundBank(MoneyScale)
}
