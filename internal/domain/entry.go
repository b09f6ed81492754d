package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction marks whether an entry brings money in or takes it out.
type Direction int

const (
	Expense Direction = 0
	Income  Direction = 1
)

// EntryKind classifies an entry once, at construction time, instead of
// re-deriving it from the debt flag and the document link on every
// lifecycle transition.
type EntryKind string

const (
	// KindDebt is an obligation between the business and a client.
	// It never moves cash.
	KindDebt EntryKind = "debt"
	// KindDirectSettlement is a manual client-facing payment with no
	// originating document.
	KindDirectSettlement EntryKind = "direct_settlement"
	// KindDocumentSettlement is a cash movement originated by a document
	// (order, sale, receipt, invoice). It does not touch the client
	// balance; the document workflow accounts for it.
	KindDocumentSettlement EntryKind = "document_settlement"
)

// DocumentRef is an opaque link to the document that originated an entry.
type DocumentRef struct {
	Type string
	ID   string
}

// Entry represents a single ledger entry: the atomic financial fact.
type Entry struct {
	ID         string
	Direction  Direction
	Amount     decimal.Decimal
	OrigAmount decimal.Decimal
	Currency   string
	Kind       EntryKind
	ClientID   *string
	RegisterID *string
	Document   *DocumentRef
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// KindOf computes the entry kind from the debt flag and the document link.
// A debt entry stays a debt even when it carries a document.
func KindOf(isDebt bool, doc *DocumentRef) EntryKind {
	if isDebt {
		return KindDebt
	}
	if doc == nil {
		return KindDirectSettlement
	}
	return KindDocumentSettlement
}

// OwnedByTransfer reports whether the entry is one leg of a cash transfer.
// Such entries are managed by the transfer orchestrator and cannot be changed
// or deleted through the generic lifecycle.
func (e *Entry) OwnedByTransfer() bool {
	return e.Document != nil && e.Document.Type == DocumentTypeCashTransfer
}

// Validate checks the entry invariants.
func (e *Entry) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if e.Direction != Income && e.Direction != Expense {
		return ErrInvalidDirection
	}
	return nil
}

// AffectsClientBalance reports whether the entry moves the client balance.
// Debts always do; direct settlements do; document-linked settlements never do.
func (e *Entry) AffectsClientBalance() bool {
	return e.ClientID != nil && e.Kind != KindDocumentSettlement
}

// AffectsCashBalance reports whether the entry moves a register balance.
// Debts represent obligations, not cash, so they never touch a register.
func (e *Entry) AffectsCashBalance() bool {
	return e.RegisterID != nil && e.Kind != KindDebt
}

// ClientDelta returns the signed client-balance change for an amount already
// converted to the base currency.
//
// Positive client balance means the client owes the business. A debt income
// raises what the client owes; a settlement income is the client paying,
// which lowers it. Expenses mirror both.
func (e *Entry) ClientDelta(converted decimal.Decimal) decimal.Decimal {
	if e.Kind == KindDebt {
		if e.Direction == Income {
			return converted
		}
		return converted.Neg()
	}

	if e.Direction == Income {
		return converted.Neg()
	}
	return converted
}

// CashDelta returns the signed register-balance change in the entry's own
// currency. Register balances are never converted.
func (e *Entry) CashDelta() decimal.Decimal {
	return e.CashDeltaOf(e.Amount)
}

// CashDeltaOf is CashDelta over an explicit amount; deletion inverts using
// the amount as originally recorded.
func (e *Entry) CashDeltaOf(amount decimal.Decimal) decimal.Decimal {
	if e.Direction == Income {
		return amount
	}
	return amount.Neg()
}
