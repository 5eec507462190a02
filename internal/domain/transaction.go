package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an atomic group of entries. It starts as a draft and
// becomes immutable once posted. Corrections to a posted transaction
// happen through reversal, never through edits.
type Transaction struct {
	ID          string
	Description string
	Metadata    map[string]any
	EffectiveAt time.Time
	RecordedAt  time.Time
	PostedAt    *time.Time
	Entries     []*Entry
}

// IsPosted reports whether the transaction has been posted.
func (t *Transaction) IsPosted() bool {
	return t.PostedAt != nil
}

// CurrencyTotals holds the summed debit and credit magnitudes for one
// currency within a transaction.
type CurrencyTotals struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

// Balanced reports whether debits equal credits exactly.
func (ct CurrencyTotals) Balanced() bool {
	return ct.Debits.Equal(ct.Credits)
}

// SumByCurrency groups entries by the currency of their target account
// and sums debit and credit magnitudes separately per group. The currency
// lives on the account, so the caller supplies an account lookup.
func SumByCurrency(entries []*Entry, accounts map[string]*Account) map[string]CurrencyTotals {
	totals := make(map[string]CurrencyTotals)

	for _, e := range entries {
		account := accounts[e.AccountID]
		if account == nil {
			continue
		}

		ct := totals[account.Currency]
		if e.Direction == DirectionDebit {
			ct.Debits = ct.Debits.Add(e.Amount)
		} else {
			ct.Credits = ct.Credits.Add(e.Amount)
		}

		totals[account.Currency] = ct
	}

	return totals
}
