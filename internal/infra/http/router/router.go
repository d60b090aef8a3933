package router

import (
	"net/http"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/http/handler"
	internalMiddleware "github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Dependencies reúne o que as rotas precisam. Metrics e Idempotency são opcionais.
type Dependencies struct {
	Users          *handler.UserHandler
	Wallets        *handler.WalletHandler
	Transactions   *handler.TransactionHandler
	Idempotency    gateway.IdempotencyRepository
	IdempotencyTTL time.Duration
	Metrics        interface {
		Middleware(http.Handler) http.Handler
		Handler() http.Handler
	}
}

// New monta o router chi com middlewares e rotas
func New(deps Dependencies) http.Handler {
	router := chi.NewRouter()

	// Middlewares básicos
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer) // Evita crash se der panic
	router.Use(middleware.Timeout(60 * time.Second))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
		router.Handle("/metrics", deps.Metrics.Handler())
	}

	// Rota de Health Check (para o Docker saber se estamos vivos)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("Falha ao escrever resposta de health check")
		}
	})

	router.Post("/users", deps.Users.Register)

	router.Route("/users/{userID}/wallets", func(r chi.Router) {
		r.Post("/", deps.Wallets.Create)
		r.Get("/", deps.Wallets.List)
		r.Get("/{walletID}", deps.Wallets.Get)

		r.Get("/{walletID}/transactions", deps.Transactions.List)
		r.Group(func(r chi.Router) {
			if deps.Idempotency != nil {
				ttl := deps.IdempotencyTTL
				if ttl <= 0 {
					ttl = 24 * time.Hour
				}
				r.Use(internalMiddleware.Idempotency(deps.Idempotency, ttl))
			}
			r.Post("/{walletID}/transactions", deps.Transactions.Create)
		})
	})

	return router
}
