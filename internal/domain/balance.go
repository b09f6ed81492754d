package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientBalance is the derived running total of a client's position, in the
// base currency. Positive means the client owes the business; negative means
// the business owes the client. The row is created lazily by the first
// balance-affecting entry that references the client.
type ClientBalance struct {
	ClientID  string
	Balance   decimal.Decimal
	UpdatedAt time.Time
}

// CashRegister is a cash register or account together with its running
// balance, denominated in the register's own currency. The balance is only
// ever mutated by non-debt entries that reference the register.
type CashRegister struct {
	ID        string
	Name      string
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
