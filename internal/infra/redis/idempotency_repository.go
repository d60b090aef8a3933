package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "idempotency:"
	lockPrefix        = "idempotency:lock:"
)

// cachedPayload é o formato gravado no Redis
type cachedPayload struct {
	StatusCode  int    `json:"status_code"`
	Body        []byte `json:"body"`
	RequestHash string `json:"request_hash"`
}

type IdempotencyRepository struct {
	client *redis.Client
}

func NewIdempotencyRepository(client *redis.Client) *IdempotencyRepository {
	return &IdempotencyRepository{client: client}
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*gateway.CachedResponse, error) {
	val, err := r.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Não encontrado (cache miss)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	var payload cachedPayload
	if err := json.Unmarshal(val, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", err)
	}

	return &gateway.CachedResponse{
		StatusCode:  payload.StatusCode,
		Body:        payload.Body,
		RequestHash: payload.RequestHash,
	}, nil
}

func (r *IdempotencyRepository) Save(ctx context.Context, key string, response gateway.CachedResponse, ttl time.Duration) error {
	bytes, err := json.Marshal(cachedPayload{
		StatusCode:  response.StatusCode,
		Body:        response.Body,
		RequestHash: response.RequestHash,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	// SetNX: se duas requisições com a mesma chave terminarem juntas, vale a primeira
	if err := r.client.SetNX(ctx, idempotencyPrefix+key, bytes, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save idempotency key: %w", err)
	}
	return nil
}

// Acquire usa SetNX como trava distribuída; o TTL evita trava eterna se a API cair no meio.
func (r *IdempotencyRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := r.client.SetNX(ctx, lockPrefix+key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire idempotency lock: %w", err)
	}
	return acquired, nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, lockPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency lock: %w", err)
	}
	return nil
}
