package rates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type money struct {
	Currency domain.Currency `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

type convertRequest struct {
	Money      money           `json:"money"`
	ToCurrency domain.Currency `json:"to_currency"`
}

type convertResponse struct {
	Converted money `json:"converted"`
}

// HTTPConverter consulta o serviço de câmbio (POST {baseURL}/convert).
//
// Com cache, pede ao serviço a conversão de rateBase unidades, divide de volta para obter a taxa,
// guarda e aplica localmente. Pedir 1 unidade perderia precisão se o serviço arredonda em 2 casas.
// Sem cache, converte o valor inteiro a cada chamada.
const rateBase = 1_000_000

type HTTPConverter struct {
	baseURL string
	client  *http.Client
	cache   gateway.RateCache
}

// NewHTTPConverter cria o conversor. cache pode ser nil.
func NewHTTPConverter(baseURL string, client *http.Client, cache gateway.RateCache) *HTTPConverter {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPConverter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		cache:   cache,
	}
}

func (c *HTTPConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount.RoundBank(domain.MoneyScale), nil
	}

	if c.cache == nil {
		converted, err := c.remote(ctx, amount, from, to)
		if err != nil {
			return decimal.Zero, err
		}
		return converted.RoundBank(domain.MoneyScale), nil
	}

	rate, found, err := c.cache.Get(ctx, from, to)
	if err != nil {
		// Cache fora do ar não deve derrubar a transação
		log.Warn().Err(err).Str("from", from.String()).Str("to", to.String()).Msg("Falha ao ler taxa do cache")
	}
	if !found {
		base := decimal.NewFromInt(rateBase)
		converted, err := c.remote(ctx, base, from, to)
		if err != nil {
			return decimal.Zero, err
		}
		rate = converted.Div(base)
		if err := c.cache.Set(ctx, from, to, rate); err != nil {
			log.Warn().Err(err).Msg("Falha ao gravar taxa no cache")
		}
	}
	return domain.ApplyRate(amount, rate), nil
}

func (c *HTTPConverter) remote(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	payload, err := json.Marshal(convertRequest{
		Money:      money{Currency: from, Amount: amount},
		ToCurrency: to,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to marshal conversion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/convert", bytes.NewReader(payload))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build conversion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("conversion service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("conversion service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode conversion response: %w", err)
	}
	if out.Converted.Currency != to {
		return decimal.Zero, fmt.Errorf("conversion service answered in %s, expected %s", out.Converted.Currency, to)
	}
	return out.Converted.Amount, nil
}
