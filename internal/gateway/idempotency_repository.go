package gateway

import (
	"context"
	"time"
)

// CachedResponse é a resposta HTTP guardada para uma Idempotency-Key.
type CachedResponse struct {
	StatusCode  int
	Body        []byte
	RequestHash string // sha256 do corpo original; reuso com outro corpo é rejeitado
}

type IdempotencyRepository interface {
	// Get retorna a resposta cacheada, ou nil se não existir (cache miss).
	Get(ctx context.Context, key string) (*CachedResponse, error)

	// Save armazena a resposta com um TTL (Time To Live). Se já existe resposta, vale a primeira.
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error

	// Acquire marca a chave como "em processamento". Retorna false se outra requisição já segura a chave.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release libera a marca de processamento.
	Release(ctx context.Context, key string) error
}
