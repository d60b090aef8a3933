package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/usecase"
	"github.com/shopspring/decimal"
)

// TransactionHandler expõe depósito, saque, transferência e histórico via HTTP
type TransactionHandler struct {
	processUC *usecase.ProcessTransactionUseCase
	historyUC *usecase.GetTransactionsUseCase
}

func NewTransactionHandler(processUC *usecase.ProcessTransactionUseCase, historyUC *usecase.GetTransactionsUseCase) *TransactionHandler {
	return &TransactionHandler{
		processUC: processUC,
		historyUC: historyUC,
	}
}

// DTOs (Data Transfer Objects) para Request/Response
// Usamos tags JSON para mapear snake_case (padrão de APIs)
type CreateTransactionRequest struct {
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	RecipientWalletID int64           `json:"recipient_wallet_id,omitempty"`
	RecipientUserID   int64           `json:"recipient_user_id,omitempty"`
}

type CreateTransactionResponse struct {
	TransactionID string                 `json:"transaction_id"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Currency      domain.Currency        `json:"currency"`
	Balance       decimal.Decimal        `json:"balance"`
	CreatedAt     time.Time              `json:"created_at"`
}

// Create processa a requisição de depósito, saque ou transferência
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "userID inválido")
		return
	}
	walletID, ok := pathID(r, "walletID")
	if !ok {
		respondError(w, http.StatusBadRequest, "walletID inválido")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	txType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		respondDomainError(w, err, "processar transação")
		return
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondDomainError(w, err, "processar transação")
		return
	}
	intent, err := domain.NewIntent(txType, req.Amount, currency, req.RecipientWalletID, req.RecipientUserID)
	if err != nil {
		respondDomainError(w, err, "processar transação")
		return
	}

	output, err := h.processUC.Execute(r.Context(), usecase.ProcessTransactionInput{
		RequesterID: userID,
		WalletID:    walletID,
		Intent:      intent,
	})
	if err != nil {
		respondDomainError(w, err, "processar transação")
		return
	}

	respondJSON(w, http.StatusCreated, CreateTransactionResponse{
		TransactionID: output.TransactionID,
		Type:          output.Type,
		Amount:        output.Amount,
		Currency:      output.Currency,
		Balance:       output.Balance,
		CreatedAt:     output.CreatedAt,
	})
}

// List devolve o histórico do dono; ?type= filtra por DEPOSIT, WITHDRAWAL ou TRANSFER
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "userID inválido")
		return
	}
	walletID, ok := pathID(r, "walletID")
	if !ok {
		respondError(w, http.StatusBadRequest, "walletID inválido")
		return
	}

	input := usecase.GetTransactionsInput{OwnerID: userID, WalletID: walletID}
	if raw := r.URL.Query().Get("type"); raw != "" {
		txType, err := domain.ParseTransactionType(raw)
		if err != nil {
			respondDomainError(w, err, "listar transações")
			return
		}
		input.Type = &txType
	}

	views, err := h.historyUC.Execute(r.Context(), input)
	if err != nil {
		respondDomainError(w, err, "listar transações")
		return
	}
	respondJSON(w, http.StatusOK, views)
}
