package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID         string          `json:"id"`
	Direction  string          `json:"direction"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Kind       string          `json:"kind"`
	ClientID   *string         `json:"client_id,omitempty"`
	RegisterID *string         `json:"register_id,omitempty"`
	Document   *DocumentRefDTO `json:"document,omitempty"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	resp := &EntryResponse{
		ID:         e.ID,
		Direction:  directionString(e.Direction),
		Amount:     e.Amount,
		Currency:   e.Currency,
		Kind:       string(e.Kind),
		ClientID:   e.ClientID,
		RegisterID: e.RegisterID,
		Date:       e.Date,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}

	if e.Document != nil {
		resp.Document = &DocumentRefDTO{Type: e.Document.Type, ID: e.Document.ID}
	}

	return resp
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

func directionString(d domain.Direction) string {
	if d == domain.Income {
		return "income"
	}
	return "expense"
}

// TransferResponse represents a cash transfer in API responses.
type TransferResponse struct {
	ID                string          `json:"id"`
	FromRegisterID    string          `json:"from_register_id"`
	ToRegisterID      string          `json:"to_register_id"`
	WithdrawalEntryID string          `json:"withdrawal_entry_id"`
	DepositEntryID    string          `json:"deposit_entry_id"`
	Amount            decimal.Decimal `json:"amount"`
	DestAmount        decimal.Decimal `json:"dest_amount"`
	Note              string          `json:"note,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.CashTransfer) *TransferResponse {
	return &TransferResponse{
		ID:                t.ID,
		FromRegisterID:    t.FromRegisterID,
		ToRegisterID:      t.ToRegisterID,
		WithdrawalEntryID: t.WithdrawalEntryID,
		DepositEntryID:    t.DepositEntryID,
		Amount:            t.Amount,
		DestAmount:        t.DestAmount,
		Note:              t.Note,
		CreatedAt:         t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.CashTransfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// CurrencyResponse represents a currency in API responses.
type CurrencyResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Symbol    string    `json:"symbol,omitempty"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrencyFromDomain converts a domain currency to a response.
func CurrencyFromDomain(c *domain.Currency) *CurrencyResponse {
	return &CurrencyResponse{
		ID:        c.ID,
		Code:      c.Code,
		Symbol:    c.Symbol,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
	}
}

// CurrenciesFromDomain converts domain currencies to responses.
func CurrenciesFromDomain(currencies []*domain.Currency) []*CurrencyResponse {
	result := make([]*CurrencyResponse, len(currencies))
	for i, c := range currencies {
		result[i] = CurrencyFromDomain(c)
	}
	return result
}

// RateResponse represents a rate record in API responses.
type RateResponse struct {
	ID            string          `json:"id"`
	CurrencyID    string          `json:"currency_id"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveFrom time.Time       `json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RateFromDomain converts a domain rate record to a response.
func RateFromDomain(r *domain.ExchangeRate) *RateResponse {
	return &RateResponse{
		ID:            r.ID,
		CurrencyID:    r.CurrencyID,
		Rate:          r.Rate,
		EffectiveFrom: r.EffectiveFrom,
		EffectiveTo:   r.EffectiveTo,
		CreatedAt:     r.CreatedAt,
	}
}

// RatesFromDomain converts domain rate records to responses.
func RatesFromDomain(rates []*domain.ExchangeRate) []*RateResponse {
	result := make([]*RateResponse, len(rates))
	for i, r := range rates {
		result[i] = RateFromDomain(r)
	}
	return result
}

// RegisterResponse represents a cash register in API responses.
type RegisterResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RegisterFromDomain converts a domain register to a response.
func RegisterFromDomain(r *domain.CashRegister) *RegisterResponse {
	return &RegisterResponse{
		ID:        r.ID,
		Name:      r.Name,
		Currency:  r.Currency,
		Balance:   r.Balance,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RegistersFromDomain converts domain registers to responses.
func RegistersFromDomain(registers []*domain.CashRegister) []*RegisterResponse {
	result := make([]*RegisterResponse, len(registers))
	for i, r := range registers {
		result[i] = RegisterFromDomain(r)
	}
	return result
}

// ClientBalanceResponse represents a client balance in API responses.
type ClientBalanceResponse struct {
	ClientID  string          `json:"client_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// ClientBalanceFromDomain converts a domain client balance to a response.
func ClientBalanceFromDomain(b *domain.ClientBalance) *ClientBalanceResponse {
	return &ClientBalanceResponse{
		ClientID:  b.ClientID,
		Balance:   b.Balance,
		UpdatedAt: b.UpdatedAt,
	}
}

// ReconciliationResponse represents the outcome of a balance check.
type ReconciliationResponse struct {
	ClientID          string          `json:"client_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// ReconciliationFromResult converts a reconciliation result to a response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		ClientID:          r.ClientID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		CheckedAt:         r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
