package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// Transaction status values in API responses.
const (
	StatusDraft  = "draft"
	StatusPosted = "posted"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string    `json:"id"`
	OwnerType      string    `json:"owner_type,omitempty"`
	OwnerID        string    `json:"owner_id,omitempty"`
	Number         string    `json:"number,omitempty"`
	Name           string    `json:"name"`
	Classification string    `json:"classification"`
	Currency       string    `json:"currency"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		OwnerType:      a.OwnerType,
		OwnerID:        a.OwnerID,
		Number:         a.Number,
		Name:           a.Name,
		Classification: string(a.Classification),
		Currency:       a.Currency,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	Description   string          `json:"description,omitempty"`
	EffectiveAt   time.Time       `json:"effective_at"`
	RecordedAt    time.Time       `json:"recorded_at"`
	Reverses      *string         `json:"reverses,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		AccountID:     e.AccountID,
		Amount:        e.Amount,
		Direction:     string(e.Direction),
		Description:   e.Description,
		EffectiveAt:   e.EffectiveAt,
		RecordedAt:    e.RecordedAt,
		Reverses:      e.Reverses,
		Metadata:      e.Metadata,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps an entry listing.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string           `json:"id"`
	Description string           `json:"description,omitempty"`
	Status      string           `json:"status"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	EffectiveAt time.Time        `json:"effective_at"`
	RecordedAt  time.Time        `json:"recorded_at"`
	PostedAt    *time.Time       `json:"posted_at,omitempty"`
	Entries     []*EntryResponse `json:"entries,omitempty"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	status := StatusDraft
	if t.IsPosted() {
		status = StatusPosted
	}

	return &TransactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Status:      status,
		Metadata:    t.Metadata,
		EffectiveAt: t.EffectiveAt,
		RecordedAt:  t.RecordedAt,
		PostedAt:    t.PostedAt,
		Entries:     EntriesFromDomain(t.Entries),
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Currency  string          `json:"currency"`
	AsOf      time.Time       `json:"as_of"`
	Debits    decimal.Decimal `json:"debits"`
	Credits   decimal.Decimal `json:"credits"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalanceFromUseCase converts a balance result to response.
func BalanceFromUseCase(b *usecase.Balance) *BalanceResponse {
	return &BalanceResponse{
		AccountID: b.AccountID,
		Currency:  b.Currency,
		AsOf:      b.AsOf,
		Debits:    b.Debits,
		Credits:   b.Credits,
		Balance:   b.Balance,
	}
}

// CurrencyTotalsResponse represents per-currency debit and credit sums.
type CurrencyTotalsResponse struct {
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
}

// ConsistencyResponse represents a ledger consistency report.
type ConsistencyResponse struct {
	Consistent             bool                              `json:"consistent"`
	UnbalancedTransactions []string                          `json:"unbalanced_transactions,omitempty"`
	TotalsByCurrency       map[string]CurrencyTotalsResponse `json:"totals_by_currency"`
	CheckedAt              time.Time                         `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency report to response.
func ConsistencyFromUseCase(report *usecase.ConsistencyReport) *ConsistencyResponse {
	totals := make(map[string]CurrencyTotalsResponse, len(report.TotalsByCurrency))
	for currency, ct := range report.TotalsByCurrency {
		totals[currency] = CurrencyTotalsResponse{
			Debits:  ct.Debits,
			Credits: ct.Credits,
		}
	}

	return &ConsistencyResponse{
		Consistent:             report.Consistent,
		UnbalancedTransactions: report.UnbalancedTransactions,
		TotalsByCurrency:       totals,
		CheckedAt:              report.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
