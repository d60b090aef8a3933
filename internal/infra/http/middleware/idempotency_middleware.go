package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/rs/zerolog/log"
)

const IdempotencyHeader = "Idempotency-Key"

// responseRecorder é um "espião" que grava o que o handler escreve
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)                  // Grava no nosso buffer
	return r.ResponseWriter.Write(b) // Manda pro cliente
}

// lockTimeout limita quanto tempo uma chave fica "em processamento" se a API cair no meio.
const lockTimeout = 30 * time.Second

// Idempotency devolve a resposta gravada quando a mesma chave é reenviada.
// A chave vale por rota (método + caminho), e o corpo precisa ser o mesmo da primeira vez.
// Enquanto a primeira requisição roda, as repetições recebem 409.
func Idempotency(store gateway.IdempotencyRepository, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				// Se não tem chave, segue
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			scopedKey := r.Method + ":" + r.URL.Path + ":" + key

			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, `{"error":"Payload inválido"}`, http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			sum := sha256.Sum256(body)
			requestHash := hex.EncodeToString(sum[:])

			cached, err := store.Get(ctx, scopedKey)
			if err != nil {
				log.Error().Err(err).Msg("Falha ao buscar chave de idempotência")
				// Em caso de erro no Redis, deixamos passar para não travar a API (Fail Open)
				next.ServeHTTP(w, r)
				return
			}

			// Cache Hit: Retornar o que já tínhamos gravado
			if cached != nil {
				replay(w, key, cached, requestHash)
				return
			}

			// Trava a chave antes de processar: duas requisições simultâneas não podem rodar o handler
			acquired, err := store.Acquire(ctx, scopedKey, lockTimeout)
			if err != nil {
				log.Error().Err(err).Msg("Falha ao travar chave de idempotência")
				next.ServeHTTP(w, r)
				return
			}
			if !acquired {
				log.Warn().Str("key", key).Msg("Requisição concorrente com a mesma Idempotency-Key")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"error":"Requisição com esta Idempotency-Key ainda em processamento"}` + "\n"))
				return
			}
			defer func() {
				if err := store.Release(context.WithoutCancel(ctx), scopedKey); err != nil {
					log.Error().Err(err).Msg("Falha ao liberar chave de idempotência")
				}
			}()

			// A requisição anterior pode ter terminado entre o Get e o Acquire
			if cached, err := store.Get(ctx, scopedKey); err == nil && cached != nil {
				replay(w, key, cached, requestHash)
				return
			}

			// Cache Miss: Processar a requisição e gravar a resposta
			recorder := &responseRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK, // Default
				body:           &bytes.Buffer{},
			}

			next.ServeHTTP(recorder, r)

			// Erros 500 não são cacheados para permitir retry.
			if recorder.statusCode < 500 {
				err := store.Save(ctx, scopedKey, gateway.CachedResponse{
					StatusCode:  recorder.statusCode,
					Body:        recorder.body.Bytes(),
					RequestHash: requestHash,
				}, ttl)
				if err != nil {
					log.Error().Err(err).Msg("Falha ao salvar chave de idempotência")
				}
			}
		})
	}
}

// replay escreve a resposta gravada, ou 422 se a chave veio com outro corpo.
func replay(w http.ResponseWriter, key string, cached *gateway.CachedResponse, requestHash string) {
	w.Header().Set("Content-Type", "application/json")
	if cached.RequestHash != "" && cached.RequestHash != requestHash {
		log.Warn().Str("key", key).Msg("Idempotency-Key reutilizada com outro payload")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"Idempotency-Key já usada com outro payload"}` + "\n"))
		return
	}
	log.Info().Str("key", key).Msg("Idempotency cache hit")
	w.Header().Set("X-Idempotency-Hit", "true")
	w.WriteHeader(cached.StatusCode)
	if _, err := w.Write(cached.Body); err != nil {
		log.Error().Err(err).Msg("Falha ao escrever resposta cacheada")
	}
}
