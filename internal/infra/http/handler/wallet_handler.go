package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/usecase"
)

type WalletHandler struct {
	createWalletUC *usecase.CreateWalletUseCase
	getWalletUC    *usecase.GetWalletUseCase
	listWalletsUC  *usecase.ListWalletsUseCase
}

func NewWalletHandler(
	createWalletUC *usecase.CreateWalletUseCase,
	getWalletUC *usecase.GetWalletUseCase,
	listWalletsUC *usecase.ListWalletsUseCase,
) *WalletHandler {
	return &WalletHandler{
		createWalletUC: createWalletUC,
		getWalletUC:    getWalletUC,
		listWalletsUC:  listWalletsUC,
	}
}

func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "userID inválido")
		return
	}

	var req struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondDomainError(w, err, "criar carteira")
		return
	}

	output, err := h.createWalletUC.Execute(r.Context(), usecase.CreateWalletInput{
		OwnerID:  userID,
		Currency: currency,
	})
	if err != nil {
		respondDomainError(w, err, "criar carteira")
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "userID inválido")
		return
	}

	output, err := h.listWalletsUC.Execute(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err, "listar carteiras")
		return
	}
	respondJSON(w, http.StatusOK, output)
}

func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	output, err := h.getWalletUC.Execute(r.Context(), userID, walletID)
	if err != nil {
		respondDomainError(w, err, "buscar carteira")
		return
	}
	respondJSON(w, http.StatusOK, output)
}
