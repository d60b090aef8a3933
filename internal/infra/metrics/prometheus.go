// Package metrics expõe contadores e histogramas Prometheus do processador e da API HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implementa gateway.MetricsRecorder.
type Recorder struct {
	registry       *prometheus.Registry
	txTotal        *prometheus.CounterVec
	txLatency      *prometheus.HistogramVec
	httpReqTotal   *prometheus.CounterVec
	httpReqLatency *prometheus.HistogramVec
}

// NewRecorder registra as métricas num registry próprio (testes não colidem com o global).
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		txTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transactions_total",
			Help: "Total de transações processadas por tipo e resultado",
		}, []string{"type", "outcome"}),
		txLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wallet_transaction_duration_seconds",
			Help:    "Latência do processamento de transações",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"type"}),
		httpReqTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		httpReqLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wallet_http_request_duration_seconds",
			Help:    "Request latency",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"method", "endpoint"}),
	}
}

func (r *Recorder) RecordTransaction(txType, outcome string, duration time.Duration) {
	r.txTotal.WithLabelValues(txType, outcome).Inc()
	r.txLatency.WithLabelValues(txType).Observe(duration.Seconds())
}

// Handler serve /metrics
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry expõe o registry (usado em testes)
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Middleware mede cada requisição pelo padrão da rota do chi (ex: /users/{userID}/wallets),
// para não explodir a cardinalidade com ids.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		r.httpReqTotal.WithLabelValues(req.Method, endpoint, strconv.Itoa(status)).Inc()
		r.httpReqLatency.WithLabelValues(req.Method, endpoint).Observe(time.Since(started).Seconds())
	})
}
