package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency. Exactly one currency system-wide
// is the default (base) currency; all client balances are stored in it.
type Currency struct {
	ID        string
	Code      string
	Symbol    string
	IsDefault bool
	CreatedAt time.Time
}

// ExchangeRate is one record of a currency's time-versioned rate history.
// Rate is defined as units of base currency per one unit of this currency.
// EffectiveTo is nil for the open-ended "current" record; a currency has at
// most one open record at any time.
type ExchangeRate struct {
	ID            string
	CurrencyID    string
	Rate          decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
}

// AppliesOn reports whether the record covers the given date.
func (r *ExchangeRate) AppliesOn(date time.Time) bool {
	if date.Before(r.EffectiveFrom) {
		return false
	}
	return r.EffectiveTo == nil || !date.After(*r.EffectiveTo)
}

// ResolveRate picks the applicable rate from a history. Ranges are supposed
// to be non-overlapping, but when more than one record matches the latest
// effective_from wins.
func ResolveRate(history []*ExchangeRate, date time.Time) (decimal.Decimal, bool) {
	var best *ExchangeRate
	for _, r := range history {
		if !r.AppliesOn(date) {
			continue
		}
		if best == nil || r.EffectiveFrom.After(best.EffectiveFrom) {
			best = r
		}
	}
	if best == nil {
		return decimal.Zero, false
	}
	return best.Rate, true
}
