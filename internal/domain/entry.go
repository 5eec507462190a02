package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether an entry debits or credits its account.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Valid reports whether d is a recognized direction.
func (d Direction) Valid() bool {
	return d == DirectionDebit || d == DirectionCredit
}

// Opposite returns the negating direction.
func (d Direction) Opposite() Direction {
	if d == DirectionDebit {
		return DirectionCredit
	}

	return DirectionDebit
}

// Entry is a single signed movement against one account, belonging to
// exactly one transaction. The amount is always positive; the direction
// encodes the sign. Entries of a posted transaction are immutable.
type Entry struct {
	ID            string
	TransactionID string
	AccountID     string
	Amount        decimal.Decimal
	Direction     Direction
	Description   string
	EffectiveAt   time.Time
	RecordedAt    time.Time
	Reverses      *string
	Metadata      map[string]any
}

// Signed returns the entry's contribution to a debit-minus-credit balance.
func (e *Entry) Signed() decimal.Decimal {
	if e.Direction == DirectionCredit {
		return e.Amount.Neg()
	}

	return e.Amount
}

// IsReversal reports whether this entry negates a previous entry.
func (e *Entry) IsReversal() bool {
	return e.Reverses != nil
}
