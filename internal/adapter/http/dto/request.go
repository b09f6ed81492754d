package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
)

// DocumentRefDTO references the document that originated an entry.
type DocumentRefDTO struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// EntryRequest represents the entry fields accepted on create and update.
type EntryRequest struct {
	Direction  string          `json:"direction"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	IsDebt     bool            `json:"is_debt"`
	ClientID   *string         `json:"client_id,omitempty"`
	RegisterID *string         `json:"register_id,omitempty"`
	Document   *DocumentRefDTO `json:"document,omitempty"`
	Date       time.Time       `json:"date"`
}

// ToCreateInput converts to use case input.
func (r *EntryRequest) ToCreateInput() (usecase.CreateEntryInput, error) {
	direction, err := parseDirection(r.Direction)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	return usecase.CreateEntryInput{
		Direction:  direction,
		Amount:     r.Amount,
		Currency:   r.Currency,
		IsDebt:     r.IsDebt,
		ClientID:   r.ClientID,
		RegisterID: r.RegisterID,
		Document:   r.Document.toDomain(),
		Date:       entryDate(r.Date),
	}, nil
}

// ToUpdateInput converts to use case input.
func (r *EntryRequest) ToUpdateInput() (usecase.UpdateEntryInput, error) {
	input, err := r.ToCreateInput()
	if err != nil {
		return usecase.UpdateEntryInput{}, err
	}

	return usecase.UpdateEntryInput(input), nil
}

func (d *DocumentRefDTO) toDomain() *domain.DocumentRef {
	if d == nil {
		return nil
	}
	return &domain.DocumentRef{Type: d.Type, ID: d.ID}
}

func parseDirection(s string) (domain.Direction, error) {
	switch s {
	case "income":
		return domain.Income, nil
	case "expense":
		return domain.Expense, nil
	default:
		return 0, domain.ErrInvalidDirection
	}
}

func entryDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// CreateTransferRequest represents a request to move money between registers.
type CreateTransferRequest struct {
	FromRegisterID string          `json:"from_register_id"`
	ToRegisterID   string          `json:"to_register_id"`
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromRegisterID: r.FromRegisterID,
		ToRegisterID:   r.ToRegisterID,
		Amount:         r.Amount,
		Note:           r.Note,
	}
}

// AddRateRequest represents a request to append an exchange rate record.
type AddRateRequest struct {
	Currency      string          `json:"currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveFrom time.Time       `json:"effective_from"`
}

// ToUseCaseInput converts to use case input.
func (r *AddRateRequest) ToUseCaseInput() usecase.AddRateInput {
	return usecase.AddRateInput{
		CurrencyCode:  r.Currency,
		Rate:          r.Rate,
		EffectiveFrom: r.EffectiveFrom,
	}
}

// CreateCurrencyRequest represents a request to create a currency.
type CreateCurrencyRequest struct {
	Code      string `json:"code"`
	Symbol    string `json:"symbol,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCurrencyRequest) ToUseCaseInput() usecase.CreateCurrencyInput {
	return usecase.CreateCurrencyInput{
		Code:      r.Code,
		Symbol:    r.Symbol,
		IsDefault: r.IsDefault,
	}
}

// CreateRegisterRequest represents a request to create a cash register.
type CreateRegisterRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRegisterRequest) ToUseCaseInput() usecase.CreateRegisterInput {
	return usecase.CreateRegisterInput{
		Name:     r.Name,
		Currency: r.Currency,
	}
}
