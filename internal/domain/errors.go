package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Account errors
	ErrAccountNotFound       = errors.New("account not found")
	ErrInactiveAccount       = errors.New("account is inactive")
	ErrInvalidClassification = errors.New("invalid account classification")

	// Transaction errors
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInsufficientEntries   = errors.New("transaction requires at least two entries")
	ErrInvalidMagnitude      = errors.New("entry amount must be positive")
	ErrInvalidDirection      = errors.New("entry direction must be debit or credit")
	ErrUnbalancedTransaction = errors.New("transaction debits do not equal credits")
	ErrImmutableTransaction  = errors.New("transaction is posted and cannot be modified")
	ErrCurrencyMismatch      = errors.New("entries cannot balance across currencies")

	// Entry errors
	ErrEntryNotFound      = errors.New("entry not found")
	ErrCannotReverseDraft = errors.New("cannot reverse an entry of an unposted transaction")
)

// UnbalancedError reports the mismatched per-currency totals of a
// rejected posting. It matches ErrUnbalancedTransaction under errors.Is.
type UnbalancedError struct {
	Currency string
	Debits   decimal.Decimal
	Credits  decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("transaction unbalanced: currency=%s debits=%s credits=%s",
		e.Currency, e.Debits, e.Credits)
}

func (e *UnbalancedError) Is(target error) bool {
	return target == ErrUnbalancedTransaction
}
