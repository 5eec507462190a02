package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/postgres/generated"
	"github.com/iho/bookkeeper/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new entry within a storage transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Tx, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return err
	}

	reverses := pgtype.Text{}
	if entry.Reverses != nil {
		reverses = pgtype.Text{String: *entry.Reverses, Valid: true}
	}

	_, err = queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:            entry.ID,
		TransactionID: entry.TransactionID,
		AccountID:     entry.AccountID,
		Amount:        decimalToNumeric(entry.Amount),
		Direction:     string(entry.Direction),
		Description:   entry.Description,
		EffectiveAt:   timeToPgTimestamptz(entry.EffectiveAt),
		RecordedAt:    timeToPgTimestamptz(entry.RecordedAt),
		Reverses:      reverses,
		Metadata:      metadata,
	})

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row)
}

// GetByTransaction retrieves all entries of a transaction.
func (r *EntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows)
}

// GetByAccount retrieves entries for an account with pagination.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByAccount(ctx, generated.GetEntriesByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows)
}

// GetReversals retrieves entries that reverse the given entry.
func (r *EntryRepository) GetReversals(ctx context.Context, entryID string) ([]*domain.Entry, error) {
	rows, err := r.queries.GetReversalEntries(ctx, pgtype.Text{String: entryID, Valid: true})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows)
}

// DeleteByTransaction removes all entries of a draft transaction.
func (r *EntryRepository) DeleteByTransaction(ctx context.Context, tx usecase.Tx, transactionID string) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.DeleteEntriesByTransaction(ctx, transactionID)
}

// SumAsOf aggregates debit and credit magnitudes over posted entries of
// an account, restricted to entries effective at or before asOf.
func (r *EntryRepository) SumAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.SumEntriesAsOf(ctx, generated.SumEntriesAsOfParams{
		AccountID: accountID,
		AsOf:      timeToPgTimestamptz(asOf),
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Debits), numericToDecimal(row.Credits), nil
}

func rowToEntry(row generated.Entry) (*domain.Entry, error) {
	entry := &domain.Entry{
		ID:            row.ID,
		TransactionID: row.TransactionID,
		AccountID:     row.AccountID,
		Amount:        numericToDecimal(row.Amount),
		Direction:     domain.Direction(row.Direction),
		Description:   row.Description,
		EffectiveAt:   row.EffectiveAt.Time,
		RecordedAt:    row.RecordedAt.Time,
	}

	if row.Reverses.Valid {
		reverses := row.Reverses.String
		entry.Reverses = &reverses
	}

	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &entry.Metadata); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

func rowsToEntries(rows []generated.Entry) ([]*domain.Entry, error) {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := rowToEntry(row)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
