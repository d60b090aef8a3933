package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func countingHandler(calls *atomic.Int32, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"call":` + strconv.Itoa(int(n)) + `,"echo":` + string(body) + `}`))
	})
}

func doRequest(h http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users/1/wallets/1/transactions", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	var calls atomic.Int32
	h := Idempotency(memory.NewIdempotencyRepository(), time.Hour)(countingHandler(&calls, http.StatusCreated))

	first := doRequest(h, "abc", `{"amount":"10"}`)
	second := doRequest(h, "abc", `{"amount":"10"}`)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotency_DifferentPayloadIsRejected(t *testing.T) {
	var calls atomic.Int32
	h := Idempotency(memory.NewIdempotencyRepository(), time.Hour)(countingHandler(&calls, http.StatusCreated))

	doRequest(h, "abc", `{"amount":"10"}`)
	rec := doRequest(h, "abc", `{"amount":"99"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotency_WithoutKeyAlwaysRuns(t *testing.T) {
	var calls atomic.Int32
	h := Idempotency(memory.NewIdempotencyRepository(), time.Hour)(countingHandler(&calls, http.StatusCreated))

	doRequest(h, "", `{}`)
	doRequest(h, "", `{}`)
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotency_ServerErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	h := Idempotency(memory.NewIdempotencyRepository(), time.Hour)(countingHandler(&calls, http.StatusInternalServerError))

	doRequest(h, "abc", `{}`)
	doRequest(h, "abc", `{}`)
	assert.Equal(t, int32(2), calls.Load())
}

type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) Get(ctx context.Context, key string) (*gateway.CachedResponse, error) {
	args := m.Called(ctx, key)
	resp, _ := args.Get(0).(*gateway.CachedResponse)
	return resp, args.Error(1)
}

func (m *MockIdempotencyRepository) Save(ctx context.Context, key string, response gateway.CachedResponse, ttl time.Duration) error {
	args := m.Called(ctx, key, response, ttl)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyRepository) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestIdempotency_FailsOpenWhenStoreIsDown(t *testing.T) {
	store := new(MockIdempotencyRepository)
	store.On("Get", mock.Anything, "POST:/users/1/wallets/1/transactions:abc").Return(nil, errors.New("redis down"))

	var calls atomic.Int32
	h := Idempotency(store, time.Hour)(countingHandler(&calls, http.StatusCreated))

	rec := doRequest(h, "abc", `{}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int32(1), calls.Load())
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIdempotency_ConcurrentDuplicateGetsConflict(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{})
	unblock := make(chan struct{})
	var once sync.Once
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		once.Do(func() { close(entered) })
		<-unblock
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"tx-1"}`))
	})
	h := Idempotency(memory.NewIdempotencyRepository(), time.Hour)(slow)

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- doRequest(h, "abc", `{"amount":"10"}`) }()
	<-entered

	duplicate := doRequest(h, "abc", `{"amount":"10"}`)
	assert.Equal(t, http.StatusConflict, duplicate.Code)

	close(unblock)
	first := <-done
	assert.Equal(t, http.StatusCreated, first.Code)

	// Depois que a primeira termina, a repetição recebe a resposta gravada
	replayed := doRequest(h, "abc", `{"amount":"10"}`)
	assert.Equal(t, http.StatusCreated, replayed.Code)
	assert.Equal(t, "true", replayed.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotency_ReleasesLockAfterServerError(t *testing.T) {
	store := new(MockIdempotencyRepository)
	key := "POST:/users/1/wallets/1/transactions:abc"
	store.On("Get", mock.Anything, key).Return(nil, nil)
	store.On("Acquire", mock.Anything, key, lockTimeout).Return(true, nil).Once()
	store.On("Release", mock.Anything, key).Return(nil).Once()

	var calls atomic.Int32
	h := Idempotency(store, time.Hour)(countingHandler(&calls, http.StatusInternalServerError))

	rec := doRequest(h, "abc", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
