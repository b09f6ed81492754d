package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/finbooks/finbooks/internal/domain"
)

// CurrencyUseCase handles currency administration.
type CurrencyUseCase struct {
	currencyRepo CurrencyRepository
	idGen        IDGenerator
}

// NewCurrencyUseCase creates a new CurrencyUseCase.
func NewCurrencyUseCase(currencyRepo CurrencyRepository, idGen IDGenerator) *CurrencyUseCase {
	return &CurrencyUseCase{
		currencyRepo: currencyRepo,
		idGen:        idGen,
	}
}

// CreateCurrencyInput represents input for creating a currency.
type CreateCurrencyInput struct {
	Code      string
	Symbol    string
	IsDefault bool
}

// CreateCurrency creates a currency. At most one currency may be the
// default; creating a second default is rejected.
func (uc *CurrencyUseCase) CreateCurrency(ctx context.Context, input CreateCurrencyInput) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return nil, err
	}

	if input.IsDefault {
		_, err := uc.currencyRepo.GetDefault(ctx)
		if err == nil {
			return nil, domain.ErrDefaultExists
		}
		if !errors.Is(err, domain.ErrNoDefaultCurrency) {
			return nil, err
		}
	}

	currency := &domain.Currency{
		ID:        uc.idGen.Generate(),
		Code:      code,
		Symbol:    input.Symbol,
		IsDefault: input.IsDefault,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.currencyRepo.Create(ctx, currency); err != nil {
		return nil, err
	}

	return currency, nil
}

// GetDefaultCurrency returns the base currency.
func (uc *CurrencyUseCase) GetDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	return uc.currencyRepo.GetDefault(ctx)
}

// GetCurrency retrieves a currency by code.
func (uc *CurrencyUseCase) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	return uc.currencyRepo.GetByCode(ctx, strings.ToUpper(code))
}

// ListCurrencies lists currencies.
func (uc *CurrencyUseCase) ListCurrencies(ctx context.Context) ([]*domain.Currency, error) {
	return uc.currencyRepo.List(ctx)
}
