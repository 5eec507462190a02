package domain

import (
	"time"
)

// Classification identifies the accounting category of an account. It
// determines how a raw debit-minus-credit balance reads: receivable,
// expense, and asset accounts rest positive; payable, revenue, and
// liability accounts rest negative.
type Classification string

const (
	ClassificationReceivable Classification = "receivable"
	ClassificationPayable    Classification = "payable"
	ClassificationRevenue    Classification = "revenue"
	ClassificationExpense    Classification = "expense"
	ClassificationAsset      Classification = "asset"
	ClassificationLiability  Classification = "liability"
)

// Valid reports whether c is a recognized classification.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationReceivable, ClassificationPayable, ClassificationRevenue,
		ClassificationExpense, ClassificationAsset, ClassificationLiability:
		return true
	}

	return false
}

// NormalSign returns +1 for debit-normal classifications and -1 for
// credit-normal ones. Multiplying a raw debit-minus-credit balance by
// this value yields the natural balance a caller usually expects.
func (c Classification) NormalSign() int64 {
	switch c {
	case ClassificationPayable, ClassificationRevenue, ClassificationLiability:
		return -1
	default:
		return 1
	}
}

// Account is a balance-bearing ledger entity scoped to one owner and one
// currency. The currency is fixed at creation; every entry against the
// account carries it implicitly. Balances are always derived from entries,
// never stored on the account.
type Account struct {
	ID             string
	OwnerType      string
	OwnerID        string
	Number         string
	Name           string
	Classification Classification
	Currency       string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
