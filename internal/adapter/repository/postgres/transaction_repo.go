package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/postgres/generated"
	"github.com/iho/bookkeeper/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new transaction within a storage transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	metadata, err := json.Marshal(transaction.Metadata)
	if err != nil {
		return err
	}

	_, err = queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:          transaction.ID,
		Description: transaction.Description,
		Metadata:    metadata,
		EffectiveAt: timeToPgTimestamptz(transaction.EffectiveAt),
		RecordedAt:  timeToPgTimestamptz(transaction.RecordedAt),
	})

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row)
}

// MarkPosted stamps posted_at on a draft transaction. Re-posting an
// already posted transaction affects no rows and reports immutability.
func (r *TransactionRepository) MarkPosted(ctx context.Context, tx usecase.Tx, id string, postedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	affected, err := queries.MarkTransactionPosted(ctx, generated.MarkTransactionPostedParams{
		ID:       id,
		PostedAt: timeToPgTimestamptz(postedAt),
	})
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrImmutableTransaction
	}

	return nil
}

// DeleteDraft removes a draft transaction. Posted rows are never touched.
func (r *TransactionRepository) DeleteDraft(ctx context.Context, tx usecase.Tx, id string) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	affected, err := queries.DeleteDraftTransaction(ctx, id)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrImmutableTransaction
	}

	return nil
}

// ListPosted lists posted transactions recorded inside the window.
func (r *TransactionRepository) ListPosted(ctx context.Context, from, to time.Time, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListPostedTransactions(ctx, generated.ListPostedTransactionsParams{
		From:   timeToPgTimestamptz(from),
		To:     timeToPgTimestamptz(to),
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transaction, err := rowToTransaction(row)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

func rowToTransaction(row generated.Transaction) (*domain.Transaction, error) {
	transaction := &domain.Transaction{
		ID:          row.ID,
		Description: row.Description,
		EffectiveAt: row.EffectiveAt.Time,
		RecordedAt:  row.RecordedAt.Time,
	}

	if row.PostedAt.Valid {
		postedAt := row.PostedAt.Time
		transaction.PostedAt = &postedAt
	}

	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &transaction.Metadata); err != nil {
			return nil, err
		}
	}

	return transaction, nil
}
