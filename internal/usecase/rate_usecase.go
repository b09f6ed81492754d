package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/infrastructure/metrics"
)

// RateUseCase resolves date-effective exchange rates, converts amounts
// through the base currency, and maintains the append-only rate log.
type RateUseCase struct {
	txManager    TransactionManager
	currencyRepo CurrencyRepository
	rateRepo     RateRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(
	txManager TransactionManager,
	currencyRepo CurrencyRepository,
	rateRepo RateRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *RateUseCase {
	return &RateUseCase{
		txManager:    txManager,
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		idGen:        idGen,
		metrics:      m,
	}
}

// AddRateInput represents input for appending a rate record.
type AddRateInput struct {
	CurrencyCode  string
	Rate          decimal.Decimal
	EffectiveFrom time.Time
}

// AddRate appends a new open-ended rate record for a currency, closing the
// previous open record at the new record's effective_from. The log is
// append-only; a record starting at or before the current open record's
// start is rejected.
func (uc *RateUseCase) AddRate(ctx context.Context, input AddRateInput) (*domain.ExchangeRate, error) {
	if input.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidRate
	}

	currency, err := uc.currencyRepo.GetByCode(ctx, strings.ToUpper(input.CurrencyCode))
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	open, err := uc.rateRepo.GetOpenForUpdate(ctx, tx, currency.ID)
	if err != nil {
		return nil, err
	}

	if open != nil {
		if !input.EffectiveFrom.After(open.EffectiveFrom) {
			return nil, domain.ErrRateOverlap
		}

		if err := uc.rateRepo.CloseOpen(ctx, tx, currency.ID, input.EffectiveFrom); err != nil {
			return nil, err
		}
	}

	rate := &domain.ExchangeRate{
		ID:            uc.idGen.Generate(),
		CurrencyID:    currency.ID,
		Rate:          input.Rate,
		EffectiveFrom: input.EffectiveFrom,
		CreatedAt:     time.Now().UTC(),
	}

	if err := uc.rateRepo.Create(ctx, tx, rate); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RatesAppended.Inc()
	}

	return rate, nil
}

// RateEffectiveOn returns the rate applicable to the currency on the date.
// The default currency falls back to 1 when it has no history; any other
// currency with no applicable record yields domain.ErrNoRateAvailable.
func (uc *RateUseCase) RateEffectiveOn(ctx context.Context, currencyCode string, on time.Time) (decimal.Decimal, error) {
	currency, err := uc.currencyRepo.GetByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return decimal.Zero, err
	}

	if uc.metrics != nil {
		uc.metrics.RateLookups.Inc()
	}

	record, err := uc.rateRepo.EffectiveOn(ctx, currency.ID, on)
	if err != nil {
		if errors.Is(err, domain.ErrNoRateAvailable) && currency.IsDefault {
			return decimal.NewFromInt(1), nil
		}

		return decimal.Zero, err
	}

	return record.Rate, nil
}

// History lists a currency's rate records, newest first.
func (uc *RateUseCase) History(ctx context.Context, currencyCode string) ([]*domain.ExchangeRate, error) {
	currency, err := uc.currencyRepo.GetByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, err
	}

	return uc.rateRepo.ListByCurrency(ctx, currency.ID)
}

// ToBase converts an amount into the base currency as of a date.
func (uc *RateUseCase) ToBase(ctx context.Context, amount decimal.Decimal, fromCode string, asOf time.Time) (decimal.Decimal, error) {
	base, err := uc.currencyRepo.GetDefault(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return uc.convert(ctx, amount, strings.ToUpper(fromCode), base.Code, base.Code, asOf)
}

// Convert converts an amount between two currencies as of a date, pivoting
// through the base currency. A rate is defined as units of base currency per
// one unit of its currency.
func (uc *RateUseCase) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	if strings.EqualFold(fromCode, toCode) {
		return amount, nil
	}

	base, err := uc.currencyRepo.GetDefault(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return uc.convert(ctx, amount, strings.ToUpper(fromCode), strings.ToUpper(toCode), base.Code, asOf)
}

func (uc *RateUseCase) convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode, baseCode string, asOf time.Time) (decimal.Decimal, error) {
	if fromCode == toCode {
		return amount, nil
	}

	result := amount

	if fromCode != baseCode {
		rate, err := uc.RateEffectiveOn(ctx, fromCode, asOf)
		if err != nil {
			return decimal.Zero, err
		}

		result = result.Mul(rate)
	}

	if toCode != baseCode {
		rate, err := uc.RateEffectiveOn(ctx, toCode, asOf)
		if err != nil {
			return decimal.Zero, err
		}

		result = result.DivRound(rate, 8)
	}

	return result.Round(convertedScale), nil
}
