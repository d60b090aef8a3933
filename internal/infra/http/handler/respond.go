package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Helpers para resposta JSON
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Falha ao codificar resposta JSON")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError faz o mapeamento de Erros de Domínio -> HTTP Status Code
func respondDomainError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrWalletNotFound):
		respondError(w, http.StatusNotFound, "Carteira não encontrada")
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "Usuário não encontrado")
	case errors.Is(err, domain.ErrNoTransactionsFound):
		respondError(w, http.StatusNotFound, "Nenhuma transação encontrada")
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		respondError(w, http.StatusForbidden, "Acesso não autorizado a esta carteira")
	case errors.Is(err, domain.ErrInsufficientFunds):
		respondError(w, http.StatusUnprocessableEntity, "Saldo insuficiente")
	case errors.Is(err, domain.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "Valor inválido")
	case errors.Is(err, domain.ErrInvalidTransactionType):
		respondError(w, http.StatusBadRequest, "Tipo de transação inválido")
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		respondError(w, http.StatusBadRequest, "Moeda não suportada")
	case errors.Is(err, domain.ErrSelfTransfer):
		respondError(w, http.StatusBadRequest, "Transferência para a própria carteira")
	case errors.Is(err, domain.ErrInvalidUsername):
		respondError(w, http.StatusBadRequest, "Nome de usuário inválido")
	case errors.Is(err, domain.ErrUserAlreadyExists):
		respondError(w, http.StatusConflict, "Usuário já existe")
	default:
		// Erro interno (banco caiu, bug, etc)
		log.Error().Err(err).Msg("Erro interno ao " + action)
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// pathID lê um id numérico da rota do chi
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
