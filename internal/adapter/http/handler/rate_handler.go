package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finbooks/finbooks/internal/adapter/http/dto"
	"github.com/finbooks/finbooks/internal/usecase"
)

// RateHandler handles exchange rate HTTP requests.
type RateHandler struct {
	rateUC *usecase.RateUseCase
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC *usecase.RateUseCase) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// Add appends a new rate record for a currency.
func (h *RateHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rate, err := h.rateUC.AddRate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add rate", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RateFromDomain(rate))
}

// EffectiveOn returns the rate applicable to a currency on a date. The date
// comes from the "on" query parameter (RFC 3339), defaulting to now.
func (h *RateHandler) EffectiveOn(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	on := time.Now().UTC()
	if v := r.URL.Query().Get("on"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		on = parsed
	}

	rate, err := h.rateUC.RateEffectiveOn(r.Context(), code, on)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve rate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"currency": code,
		"on":       on,
		"rate":     rate,
	})
}

// History lists a currency's rate records, newest first.
func (h *RateHandler) History(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	rates, err := h.rateUC.History(r.Context(), code)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list rates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RatesFromDomain(rates))
}
