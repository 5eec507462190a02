package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
)

// ListAccountsFilter narrows account listings.
type ListAccountsFilter struct {
	OwnerType      string
	OwnerID        string
	Classification domain.Classification
	Currency       string
	ActiveOnly     bool
	Limit          int
	Offset         int
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Tx, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDs(ctx context.Context, tx Tx, ids []string) ([]*domain.Account, error)
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	List(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	MarkPosted(ctx context.Context, tx Tx, id string, postedAt time.Time) error
	DeleteDraft(ctx context.Context, tx Tx, id string) error
	ListPosted(ctx context.Context, from, to time.Time, limit, offset int) ([]*domain.Transaction, error)
}

// EntryRepository defines data access for entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Tx, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
	GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	GetReversals(ctx context.Context, entryID string) ([]*domain.Entry, error)
	DeleteByTransaction(ctx context.Context, tx Tx, transactionID string) error
	// SumAsOf returns the summed debit and credit magnitudes over all
	// entries of posted transactions for the account, restricted to
	// entries with effective_at <= asOf.
	SumAsOf(ctx context.Context, accountID string, asOf time.Time) (debits, credits decimal.Decimal, err error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// FindUnbalancedTransactions returns ids of posted transactions whose
	// entries do not net to zero per currency, skipping reversal
	// transactions (single-leg reversals are unbalanced by construction).
	FindUnbalancedTransactions(ctx context.Context, limit int) ([]string, error)
	// TotalsByCurrency sums debit and credit magnitudes over all posted
	// entries, grouped by account currency.
	TotalsByCurrency(ctx context.Context) (map[string]domain.CurrencyTotals, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Tx represents a storage-level atomic unit. Everything created through
// it commits or rolls back together.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation that failed with a transient storage
// error, such as a serialization failure under concurrent postings.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
