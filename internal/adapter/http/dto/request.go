package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	OwnerType      string `json:"owner_type"`
	OwnerID        string `json:"owner_id"`
	Number         string `json:"number"`
	Name           string `json:"name"`
	Classification string `json:"classification"`
	Currency       string `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerType:      r.OwnerType,
		OwnerID:        r.OwnerID,
		Number:         r.Number,
		Name:           r.Name,
		Classification: domain.Classification(r.Classification),
		Currency:       r.Currency,
	}
}

// EntryItem represents a single entry leg in a posting request.
type EntryItem struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Description string          `json:"description,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *EntryItem) ToUseCaseInput() usecase.EntryInput {
	return usecase.EntryInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Direction:   domain.Direction(r.Direction),
		Description: r.Description,
		Metadata:    r.Metadata,
	}
}

// PostTransactionRequest represents a request to post a balanced
// transaction in one operation.
type PostTransactionRequest struct {
	Description string         `json:"description"`
	EffectiveAt *time.Time     `json:"effective_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Entries     []EntryItem    `json:"entries"`
}

// ToUseCaseInput converts to use case input.
func (r *PostTransactionRequest) ToUseCaseInput() usecase.PostTransactionInput {
	entries := make([]usecase.EntryInput, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = e.ToUseCaseInput()
	}
	return usecase.PostTransactionInput{
		Description: r.Description,
		EffectiveAt: r.EffectiveAt,
		Metadata:    r.Metadata,
		Entries:     entries,
	}
}

// CreateDraftRequest represents a request to create a draft transaction.
type CreateDraftRequest struct {
	Description string         `json:"description"`
	EffectiveAt *time.Time     `json:"effective_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDraftRequest) ToUseCaseInput() usecase.CreateDraftInput {
	return usecase.CreateDraftInput{
		Description: r.Description,
		EffectiveAt: r.EffectiveAt,
		Metadata:    r.Metadata,
	}
}

// ReverseRequest represents a request to reverse an entry or a whole
// transaction.
type ReverseRequest struct {
	Reason      string     `json:"reason"`
	EffectiveAt *time.Time `json:"effective_at,omitempty"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
