package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/usecase"
)

type UserHandler struct {
	registerUserUC *usecase.RegisterUserUseCase
}

func NewUserHandler(registerUserUC *usecase.RegisterUserUseCase) *UserHandler {
	return &UserHandler{registerUserUC: registerUserUC}
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Currency string `json:"currency"` // opcional, padrão INR
}

// Register cria o usuário junto com a carteira inicial
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	input := usecase.RegisterUserInput{Username: req.Username}
	if req.Currency != "" {
		currency, err := domain.ParseCurrency(req.Currency)
		if err != nil {
			respondDomainError(w, err, "cadastrar usuário")
			return
		}
		input.Currency = currency
	}

	output, err := h.registerUserUC.Execute(r.Context(), input)
	if err != nil {
		respondDomainError(w, err, "cadastrar usuário")
		return
	}

	respondJSON(w, http.StatusCreated, output)
}
