package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidRegisterName = errors.New("invalid register name")
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxRegisterNameLength = 255
	MaxEntryAmount        = "1000000000000" // 1 trillion
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateRegisterName validates a cash register name.
func ValidateRegisterName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidRegisterName)
	}

	if len(name) > MaxRegisterNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidRegisterName, MaxRegisterNameLength)
	}

	return nil
}

// ValidateCurrencyCode validates a three-letter currency code.
func ValidateCurrencyCode(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("%w: %q is not a three-letter code", ErrInvalidCurrencyCode, code)
	}

	return nil
}

// ValidateAmount validates an entry or transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 100
	const defaultPageSize = 20

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
