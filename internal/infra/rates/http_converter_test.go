package rates

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeRateService responde como o serviço de câmbio usando o catálogo fixo, sem arredondar.
func fakeRateService(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return roundingRateService(t, calls, 10)
}

// roundingRateService arredonda a resposta em places casas, como um serviço que devolve centavos.
func roundingRateService(t *testing.T, calls *atomic.Int32, places int32) *httptest.Server {
	t.Helper()
	catalog := domain.NewCatalog()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/convert", r.URL.Path)

		var req convertRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		amount := req.Money.Amount.Mul(catalog.Rate(req.Money.Currency)).DivRound(catalog.Rate(req.ToCurrency), places)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(convertResponse{Converted: money{Currency: req.ToCurrency, Amount: amount}})
	}))
}

type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) Get(ctx context.Context, from, to domain.Currency) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockRateCache) Set(ctx context.Context, from, to domain.Currency, rate decimal.Decimal) error {
	args := m.Called(ctx, from, to, rate)
	return args.Error(0)
}

func TestHTTPConverter_WithoutCache(t *testing.T) {
	var calls atomic.Int32
	srv := fakeRateService(t, &calls)
	defer srv.Close()

	c := NewHTTPConverter(srv.URL+"/", srv.Client(), nil)

	got, err := c.Convert(context.Background(), decimal.NewFromInt(100), domain.USD, domain.INR)
	require.NoError(t, err)
	assert.Equal(t, "8300.00", got.StringFixed(2))

	got, err = c.Convert(context.Background(), decimal.NewFromInt(100), domain.INR, domain.USD)
	require.NoError(t, err)
	assert.Equal(t, "1.20", got.StringFixed(2))

	// Mesma moeda não chama o serviço
	got, err = c.Convert(context.Background(), decimal.RequireFromString("7.125"), domain.EUR, domain.EUR)
	require.NoError(t, err)
	assert.Equal(t, "7.12", got.StringFixed(2))

	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPConverter_UsesCachedRate(t *testing.T) {
	var calls atomic.Int32
	srv := fakeRateService(t, &calls)
	defer srv.Close()

	cache := new(MockRateCache)
	cache.On("Get", mock.Anything, domain.USD, domain.INR).Return(decimal.Zero, false, nil).Once()
	cache.On("Set", mock.Anything, domain.USD, domain.INR, mock.MatchedBy(func(r decimal.Decimal) bool {
		return r.Equal(decimal.NewFromInt(83))
	})).Return(nil).Once()
	cache.On("Get", mock.Anything, domain.USD, domain.INR).Return(decimal.NewFromInt(83), true, nil)

	c := NewHTTPConverter(srv.URL, srv.Client(), cache)

	for i := 0; i < 3; i++ {
		got, err := c.Convert(context.Background(), decimal.RequireFromString("2.5"), domain.USD, domain.INR)
		require.NoError(t, err)
		assert.Equal(t, "207.50", got.StringFixed(2))
	}

	assert.Equal(t, int32(1), calls.Load())
	cache.AssertExpectations(t)
}

func TestHTTPConverter_CachedRateKeepsPrecisionWhenServiceRounds(t *testing.T) {
	var calls atomic.Int32
	srv := roundingRateService(t, &calls, 2)
	defer srv.Close()

	// 1.000.000 INR -> 12048.19 USD, taxa 0.01204819 (1 INR sozinho viraria 0.01)
	rate := decimal.RequireFromString("0.01204819")
	cache := new(MockRateCache)
	cache.On("Get", mock.Anything, domain.INR, domain.USD).Return(decimal.Zero, false, nil).Once()
	cache.On("Set", mock.Anything, domain.INR, domain.USD, mock.MatchedBy(func(r decimal.Decimal) bool {
		return r.Equal(rate)
	})).Return(nil).Once()
	cache.On("Get", mock.Anything, domain.INR, domain.USD).Return(rate, true, nil)

	c := NewHTTPConverter(srv.URL, srv.Client(), cache)

	for i := 0; i < 2; i++ {
		got, err := c.Convert(context.Background(), decimal.NewFromInt(1000), domain.INR, domain.USD)
		require.NoError(t, err)
		assert.Equal(t, "12.05", got.StringFixed(2))
	}

	assert.Equal(t, int32(1), calls.Load())
	cache.AssertExpectations(t)
}

func TestHTTPConverter_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status 500", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"json inválido", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"moeda errada na resposta", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(convertResponse{Converted: money{Currency: domain.EUR, Amount: decimal.NewFromInt(1)}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewHTTPConverter(srv.URL, srv.Client(), nil)
			_, err := c.Convert(context.Background(), decimal.NewFromInt(1), domain.USD, domain.INR)
			assert.Error(t, err)
		})
	}
}

func TestStaticConverter(t *testing.T) {
	c := NewStaticConverter(nil)

	got, err := c.Convert(context.Background(), decimal.NewFromInt(10), domain.EUR, domain.INR)
	require.NoError(t, err)
	assert.Equal(t, "900.00", got.StringFixed(2))

	_, err = c.Convert(context.Background(), decimal.NewFromInt(10), domain.Currency("JPY"), domain.INR)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}
