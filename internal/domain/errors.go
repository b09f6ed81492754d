package domain

import "errors"

var (
	// Currency and rate errors
	ErrNoDefaultCurrency = errors.New("no default currency configured")
	ErrDefaultExists     = errors.New("a default currency already exists")
	ErrCurrencyNotFound  = errors.New("currency not found")
	ErrNoRateAvailable   = errors.New("no exchange rate available for date")
	ErrInvalidRate       = errors.New("rate must be positive")
	ErrRateOverlap       = errors.New("rate period overlaps existing history")

	// Entry errors
	ErrEntryNotFound      = errors.New("entry not found")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidDirection   = errors.New("direction must be income or expense")
	ErrCashEntryImmutable = errors.New("cash-affecting fields of a committed entry cannot be changed")

	// Register and transfer errors
	ErrRegisterNotFound  = errors.New("cash register not found")
	ErrSameRegister      = errors.New("cannot transfer to same register")
	ErrTransferNotFound  = errors.New("transfer not found")
	ErrTransferOwnsEntry = errors.New("entry belongs to a cash transfer and cannot be changed directly")

	// Storage errors
	ErrConcurrentModification = errors.New("concurrent modification, retries exhausted")
)
