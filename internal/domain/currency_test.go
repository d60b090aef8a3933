package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{"INR", INR, false},
		{"usd", USD, false},
		{" eur ", EUR, false},
		{"GBP", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCurrency(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_Convert(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name     string
		amount   string
		from, to Currency
		want     string
	}{
		{"USD para INR", "100", USD, INR, "8300.00"},
		{"EUR para INR", "10", EUR, INR, "900.00"},
		{"INR para USD arredonda", "100", INR, USD, "1.20"},
		{"USD para EUR", "100", USD, EUR, "92.22"},
		{"mesma moeda mantém valor", "42.5", EUR, EUR, "42.50"},
		{"half-even para baixo", "0.125", INR, INR, "0.12"},
		{"half-even para cima", "0.135", INR, INR, "0.14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Convert(decimal.RequireFromString(tt.amount), tt.from, tt.to)
			assert.Equal(t, tt.want, got.StringFixed(MoneyScale))
		})
	}
}

func TestCatalog_ConvertRoundTrip(t *testing.T) {
	catalog := NewCatalog()
	tolerance := decimal.RequireFromString("0.01")

	for _, raw := range []string{"100", "55.55", "0.99", "12345.67"} {
		for _, from := range SupportedCurrencies() {
			for _, to := range SupportedCurrencies() {
				amount := decimal.RequireFromString(raw)
				back := catalog.Convert(catalog.Convert(amount, from, to), to, from)

				// Cada arredondamento perde até meio centavo da moeda de destino;
				// o primeiro volta ampliado pela razão das taxas.
				limit := tolerance.Mul(catalog.Rate(to).Div(catalog.Rate(from)).Add(decimal.NewFromInt(1)))
				assert.True(t, back.Sub(amount).Abs().LessThanOrEqual(limit),
					"%s %s -> %s -> %s = %s", raw, from, to, from, back)
			}
		}
	}
}

func TestApplyRate(t *testing.T) {
	got := ApplyRate(decimal.RequireFromString("10"), decimal.RequireFromString("0.0120481927"))
	assert.Equal(t, "0.12", got.StringFixed(MoneyScale))
}
