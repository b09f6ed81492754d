package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbooks/finbooks/internal/adapter/http/dto"
	"github.com/finbooks/finbooks/internal/usecase"
)

// CurrencyHandler handles currency HTTP requests.
type CurrencyHandler struct {
	currencyUC *usecase.CurrencyUseCase
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencyUC *usecase.CurrencyUseCase) *CurrencyHandler {
	return &CurrencyHandler{currencyUC: currencyUC}
}

// Create creates a currency.
func (h *CurrencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	currency, err := h.currencyUC.CreateCurrency(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create currency", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CurrencyFromDomain(currency))
}

// Get retrieves a currency by code.
func (h *CurrencyHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	currency, err := h.currencyUC.GetCurrency(r.Context(), code)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get currency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrencyFromDomain(currency))
}

// GetDefault retrieves the base currency.
func (h *CurrencyHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	currency, err := h.currencyUC.GetDefaultCurrency(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get default currency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrencyFromDomain(currency))
}

// List lists currencies.
func (h *CurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.currencyUC.ListCurrencies(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list currencies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrenciesFromDomain(currencies))
}
