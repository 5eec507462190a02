package domain

import "time"

// Event types
const (
	EventTypeTransactionPosted = "transaction.posted"
	EventTypeEntryReversed     = "entry.reversed"
	EventTypeAccountCreated    = "account.created"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeAccount     = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionPostedEvent payload
type TransactionPostedEvent struct {
	TransactionID string `json:"transaction_id"`
	Description   string `json:"description"`
	EntryCount    int    `json:"entry_count"`
	EffectiveAt   string `json:"effective_at"`
}

// EntryReversedEvent payload
type EntryReversedEvent struct {
	ReversalTransactionID string `json:"reversal_transaction_id"`
	OriginalEntryID       string `json:"original_entry_id"`
	AccountID             string `json:"account_id"`
	Amount                string `json:"amount"`
	Reason                string `json:"reason"`
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID      string `json:"account_id"`
	OwnerID        string `json:"owner_id"`
	Classification string `json:"classification"`
	Currency       string `json:"currency"`
}
