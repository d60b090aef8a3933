package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordTransaction(t *testing.T) {
	r := NewRecorder()

	r.RecordTransaction("DEPOSIT", "success", 10*time.Millisecond)
	r.RecordTransaction("DEPOSIT", "success", 20*time.Millisecond)
	r.RecordTransaction("WITHDRAWAL", "insufficient_funds", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.txTotal.WithLabelValues("DEPOSIT", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.txTotal.WithLabelValues("WITHDRAWAL", "insufficient_funds")))
}

func TestRecorder_MiddlewareUsesRoutePattern(t *testing.T) {
	r := NewRecorder()

	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/users/{userID}/wallets", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.Handle("/metrics", r.Handler())

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+id+"/wallets", nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(r.httpReqTotal.WithLabelValues("GET", "/users/{userID}/wallets", "418")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "wallet_http_requests_total")
}
