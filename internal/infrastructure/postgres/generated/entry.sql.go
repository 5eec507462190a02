package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createEntry = `-- name: CreateEntry :one
INSERT INTO entries (id, transaction_id, account_id, amount, direction, description, effective_at, recorded_at, reverses, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, transaction_id, account_id, amount, direction, description, effective_at, recorded_at, reverses, metadata
`

type CreateEntryParams struct {
	ID            string             `json:"id"`
	TransactionID string             `json:"transaction_id"`
	AccountID     string             `json:"account_id"`
	Amount        pgtype.Numeric     `json:"amount"`
	Direction     string             `json:"direction"`
	Description   string             `json:"description"`
	EffectiveAt   pgtype.Timestamptz `json:"effective_at"`
	RecordedAt    pgtype.Timestamptz `json:"recorded_at"`
	Reverses      pgtype.Text        `json:"reverses"`
	Metadata      []byte             `json:"metadata"`
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (Entry, error) {
	row := q.db.QueryRow(ctx, createEntry,
		arg.ID,
		arg.TransactionID,
		arg.AccountID,
		arg.Amount,
		arg.Direction,
		arg.Description,
		arg.EffectiveAt,
		arg.RecordedAt,
		arg.Reverses,
		arg.Metadata,
	)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.TransactionID,
		&i.AccountID,
		&i.Amount,
		&i.Direction,
		&i.Description,
		&i.EffectiveAt,
		&i.RecordedAt,
		&i.Reverses,
		&i.Metadata,
	)
	return i, err
}

const getEntryByID = `-- name: GetEntryByID :one
SELECT id, transaction_id, account_id, amount, direction, description, effective_at, recorded_at, reverses, metadata FROM entries WHERE id = $1
`

func (q *Queries) GetEntryByID(ctx context.Context, id string) (Entry, error) {
	row := q.db.QueryRow(ctx, getEntryByID, id)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.TransactionID,
		&i.AccountID,
		&i.Amount,
		&i.Direction,
		&i.Description,
		&i.EffectiveAt,
		&i.RecordedAt,
		&i.Reverses,
		&i.Metadata,
	)
	return i, err
}

const getEntriesByTransaction = `-- name: GetEntriesByTransaction :many
SELECT id, transaction_id, account_id, amount, direction, description, effective_at, recorded_at, reverses, metadata FROM entries
WHERE transaction_id = $1
ORDER BY id
`

func (q *Queries) GetEntriesByTransaction(ctx context.Context, transactionID string) ([]Entry, error) {
	rows, err := q.db.Query(ctx, getEntriesByTransaction, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.TransactionID,
			&i.AccountID,
			&i.Amount,
			&i.Direction,
			&i.Description,
			&i.EffectiveAt,
			&i.RecordedAt,
			&i.Reverses,
			&i.Metadata,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getEntriesByAccount = `-- name: GetEntriesByAccount :many
SELECT id, transaction_id, account_id, amount, direction, description, effective_at, recorded_at, reverses, metadata FROM entries
WHERE account_id = $1
ORDER BY effective_at DESC, id DESC
LIMIT $2 OFFSET $3
`

type GetEntriesByAccountParams struct {
	AccountID string `json:"account_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) GetEntriesByAccount(ctx context.Context, arg GetEntriesByAccountParams) ([]Entry, error) {
	rows, err := q.db.Query(ctx, getEntriesByAccount, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.TransactionID,
			&i.AccountID,
			&i.Amount,
			&i.Direction,
			&i.Description,
			&i.EffectiveAt,
			&i.RecordedAt,
			&i.Reverses,
			&i.Metadata,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getReversalEntries = `-- name: GetReversalEntries :many
SELECT id, transaction_id, account_id, amount, direction, description, effective_at, recorded_at, reverses, metadata FROM entries
WHERE reverses = $1
ORDER BY recorded_at
`

func (q *Queries) GetReversalEntries(ctx context.Context, reverses pgtype.Text) ([]Entry, error) {
	rows, err := q.db.Query(ctx, getReversalEntries, reverses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.TransactionID,
			&i.AccountID,
			&i.Amount,
			&i.Direction,
			&i.Description,
			&i.EffectiveAt,
			&i.RecordedAt,
			&i.Reverses,
			&i.Metadata,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteEntriesByTransaction = `-- name: DeleteEntriesByTransaction :exec
DELETE FROM entries WHERE transaction_id = $1
`

func (q *Queries) DeleteEntriesByTransaction(ctx context.Context, transactionID string) error {
	_, err := q.db.Exec(ctx, deleteEntriesByTransaction, transactionID)
	return err
}

const sumEntriesAsOf = `-- name: SumEntriesAsOf :one
SELECT
    COALESCE(SUM(CASE WHEN e.direction = 'debit' THEN e.amount ELSE 0 END), 0)::numeric AS debits,
    COALESCE(SUM(CASE WHEN e.direction = 'credit' THEN e.amount ELSE 0 END), 0)::numeric AS credits
FROM entries e
JOIN transactions t ON t.id = e.transaction_id
WHERE e.account_id = $1
  AND t.posted_at IS NOT NULL
  AND e.effective_at <= $2
`

type SumEntriesAsOfParams struct {
	AccountID string             `json:"account_id"`
	AsOf      pgtype.Timestamptz `json:"as_of"`
}

type SumEntriesAsOfRow struct {
	Debits  pgtype.Numeric `json:"debits"`
	Credits pgtype.Numeric `json:"credits"`
}

func (q *Queries) SumEntriesAsOf(ctx context.Context, arg SumEntriesAsOfParams) (SumEntriesAsOfRow, error) {
	row := q.db.QueryRow(ctx, sumEntriesAsOf, arg.AccountID, arg.AsOf)
	var i SumEntriesAsOfRow
	err := row.Scan(&i.Debits, &i.Credits)
	return i, err
}
