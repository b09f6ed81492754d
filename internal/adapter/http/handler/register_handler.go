package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbooks/finbooks/internal/adapter/http/dto"
	"github.com/finbooks/finbooks/internal/usecase"
)

// RegisterHandler handles cash register HTTP requests.
type RegisterHandler struct {
	registerUC *usecase.RegisterUseCase
	balanceUC  *usecase.BalanceUseCase
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(registerUC *usecase.RegisterUseCase, balanceUC *usecase.BalanceUseCase) *RegisterHandler {
	return &RegisterHandler{
		registerUC: registerUC,
		balanceUC:  balanceUC,
	}
}

// Create creates a register.
func (h *RegisterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	register, err := h.registerUC.CreateRegister(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create register", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterFromDomain(register))
}

// Get retrieves a register by ID.
func (h *RegisterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	register, err := h.registerUC.GetRegister(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get register", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterFromDomain(register))
}

// GetBalance returns the register with its current balance, through the
// balance cache.
func (h *RegisterHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	register, err := h.balanceUC.GetRegisterBalance(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get register balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterFromDomain(register))
}

// List lists registers.
func (h *RegisterHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	registers, err := h.registerUC.ListRegisters(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list registers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegistersFromDomain(registers))
}
