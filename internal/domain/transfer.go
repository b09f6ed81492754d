package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentTypeCashTransfer marks the two entries a cash transfer creates.
const DocumentTypeCashTransfer = "cash_transfer"

// CashTransfer represents money moved between two cash registers via a
// matched pair of ledger entries. The pair is orchestrator-owned: the generic
// entry lifecycle must never re-apply aggregate arithmetic for it.
type CashTransfer struct {
	ID                string
	FromRegisterID    string
	ToRegisterID      string
	WithdrawalEntryID string
	DepositEntryID    string
	Amount            decimal.Decimal
	DestAmount        decimal.Decimal
	Note              string
	CreatedAt         time.Time
}

// Validate validates a transfer request.
func (t *CashTransfer) Validate() error {
	if t.FromRegisterID == t.ToRegisterID {
		return ErrSameRegister
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
