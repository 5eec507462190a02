package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrMetadataTooLarge   = errors.New("metadata size exceeds limit")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxDescriptionLength = 500
	MaxMetadataSize      = 10240           // 10KB
	MaxEntryAmount       = "1000000000000" // 1 trillion

	// DefaultPageSize is applied when a caller omits a listing limit.
	DefaultPageSize = 20

	// MaxPageSize caps a caller-supplied listing limit.
	MaxPageSize = 100
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateClassification validates an account classification.
func ValidateClassification(c Classification) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidClassification, string(c))
	}

	return nil
}

// ValidateAccountName validates an optional account name.
func ValidateAccountName(name string) error {
	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateAmount validates an entry magnitude. Zero and negative amounts
// are rejected; direction encodes sign, not the amount itself.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidMagnitude
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}

// ValidateDescription validates an optional free-text description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: limit is %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}

	return nil
}

// ValidateMetadata validates metadata size.
func ValidateMetadata(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}

	// Estimate size (rough approximation)
	size := 0
	for k, v := range metadata {
		size += len(k)
		size += len(fmt.Sprintf("%v", v))
	}

	if size > MaxMetadataSize {
		return fmt.Errorf("%w: metadata size %d bytes exceeds limit of %d bytes", ErrMetadataTooLarge, size, MaxMetadataSize)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
