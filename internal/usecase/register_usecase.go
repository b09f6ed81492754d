package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
)

// RegisterUseCase handles cash register administration.
type RegisterUseCase struct {
	registerRepo RegisterRepository
	currencyRepo CurrencyRepository
	idGen        IDGenerator
}

// NewRegisterUseCase creates a new RegisterUseCase.
func NewRegisterUseCase(registerRepo RegisterRepository, currencyRepo CurrencyRepository, idGen IDGenerator) *RegisterUseCase {
	return &RegisterUseCase{
		registerRepo: registerRepo,
		currencyRepo: currencyRepo,
		idGen:        idGen,
	}
}

// CreateRegisterInput represents input for creating a cash register.
type CreateRegisterInput struct {
	Name     string
	Currency string
}

// CreateRegister creates a register with a zero balance in its currency.
func (uc *RegisterUseCase) CreateRegister(ctx context.Context, input CreateRegisterInput) (*domain.CashRegister, error) {
	if err := domain.ValidateRegisterName(input.Name); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.Currency))
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return nil, err
	}

	// The currency must be known so later conversions can resolve rates.
	if _, err := uc.currencyRepo.GetByCode(ctx, code); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	register := &domain.CashRegister{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(input.Name),
		Currency:  code,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.registerRepo.Create(ctx, register); err != nil {
		return nil, err
	}

	return register, nil
}

// GetRegister retrieves a register by ID.
func (uc *RegisterUseCase) GetRegister(ctx context.Context, id string) (*domain.CashRegister, error) {
	return uc.registerRepo.GetByID(ctx, id)
}

// ListRegisters lists registers.
func (uc *RegisterUseCase) ListRegisters(ctx context.Context, limit, offset int) ([]*domain.CashRegister, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.registerRepo.List(ctx, limit, offset)
}
