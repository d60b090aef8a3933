package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RateCache guarda taxas de câmbio obtidas do serviço remoto.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{client: client, ttl: ttl}
}

func rateKey(from, to domain.Currency) string {
	return "rate:" + from.String() + ":" + to.String()
}

func (c *RateCache) Get(ctx context.Context, from, to domain.Currency) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, rateKey(from, to)).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to get rate: %w", err)
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("invalid cached rate %q: %w", val, err)
	}
	return rate, true, nil
}

func (c *RateCache) Set(ctx context.Context, from, to domain.Currency, rate decimal.Decimal) error {
	if err := c.client.Set(ctx, rateKey(from, to), rate.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set rate: %w", err)
	}
	return nil
}
