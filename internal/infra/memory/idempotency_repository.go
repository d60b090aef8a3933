package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
)

type cachedEntry struct {
	response  gateway.CachedResponse
	expiresAt time.Time
}

// IdempotencyRepository guarda respostas em memória, com expiração preguiçosa.
type IdempotencyRepository struct {
	mu       sync.Mutex
	entries  map[string]cachedEntry
	inFlight map[string]time.Time // chave -> expiração da marca de processamento
	now      func() time.Time
}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{
		entries:  make(map[string]cachedEntry),
		inFlight: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*gateway.CachedResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.live(key)
	if !ok {
		return nil, nil
	}
	resp := entry.response
	return &resp, nil
}

// Save mantém a primeira resposta gravada, igual ao SetNX do Redis.
func (r *IdempotencyRepository) Save(ctx context.Context, key string, response gateway.CachedResponse, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live(key); ok {
		return nil
	}
	r.entries[key] = cachedEntry{response: response, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *IdempotencyRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if expiresAt, held := r.inFlight[key]; held && r.now().Before(expiresAt) {
		return false, nil
	}
	r.inFlight[key] = r.now().Add(ttl)
	return true, nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, key)
	return nil
}

// live devolve a entrada não expirada; chamar com mu travado.
func (r *IdempotencyRepository) live(key string) (cachedEntry, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return cachedEntry{}, false
	}
	if r.now().After(entry.expiresAt) {
		delete(r.entries, key)
		return cachedEntry{}, false
	}
	return entry, true
}
