package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbooks/finbooks/internal/adapter/http/dto"
	"github.com/finbooks/finbooks/internal/usecase"
)

// ClientHandler handles client balance HTTP requests.
type ClientHandler struct {
	balanceUC   *usecase.BalanceUseCase
	reconcileUC *usecase.ReconcileUseCase
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(balanceUC *usecase.BalanceUseCase, reconcileUC *usecase.ReconcileUseCase) *ClientHandler {
	return &ClientHandler{
		balanceUC:   balanceUC,
		reconcileUC: reconcileUC,
	}
}

// GetBalance returns the client's balance in the base currency.
func (h *ClientHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	balance, err := h.balanceUC.GetClientBalance(r.Context(), clientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get client balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientBalanceFromDomain(balance))
}

// Reconcile recomputes the client's balance from its entries and reports
// drift against the stored aggregate.
func (h *ClientHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	result, err := h.reconcileUC.ReconcileClient(r.Context(), clientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}
