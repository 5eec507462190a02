package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (id, description, metadata, effective_at, recorded_at, posted_at)
VALUES ($1, $2, $3, $4, $5, NULL)
RETURNING id, description, metadata, effective_at, recorded_at, posted_at
`

type CreateTransactionParams struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Metadata    []byte             `json:"metadata"`
	EffectiveAt pgtype.Timestamptz `json:"effective_at"`
	RecordedAt  pgtype.Timestamptz `json:"recorded_at"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, createTransaction,
		arg.ID,
		arg.Description,
		arg.Metadata,
		arg.EffectiveAt,
		arg.RecordedAt,
	)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.Description,
		&i.Metadata,
		&i.EffectiveAt,
		&i.RecordedAt,
		&i.PostedAt,
	)
	return i, err
}

const getTransactionByID = `-- name: GetTransactionByID :one
SELECT id, description, metadata, effective_at, recorded_at, posted_at FROM transactions WHERE id = $1
`

func (q *Queries) GetTransactionByID(ctx context.Context, id string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByID, id)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.Description,
		&i.Metadata,
		&i.EffectiveAt,
		&i.RecordedAt,
		&i.PostedAt,
	)
	return i, err
}

const markTransactionPosted = `-- name: MarkTransactionPosted :execrows
UPDATE transactions
SET posted_at = $2
WHERE id = $1 AND posted_at IS NULL
`

type MarkTransactionPostedParams struct {
	ID       string             `json:"id"`
	PostedAt pgtype.Timestamptz `json:"posted_at"`
}

func (q *Queries) MarkTransactionPosted(ctx context.Context, arg MarkTransactionPostedParams) (int64, error) {
	result, err := q.db.Exec(ctx, markTransactionPosted, arg.ID, arg.PostedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteDraftTransaction = `-- name: DeleteDraftTransaction :execrows
DELETE FROM transactions WHERE id = $1 AND posted_at IS NULL
`

func (q *Queries) DeleteDraftTransaction(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteDraftTransaction, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listPostedTransactions = `-- name: ListPostedTransactions :many
SELECT id, description, metadata, effective_at, recorded_at, posted_at FROM transactions
WHERE posted_at IS NOT NULL AND recorded_at >= $1 AND recorded_at <= $2
ORDER BY recorded_at DESC
LIMIT $3 OFFSET $4
`

type ListPostedTransactionsParams struct {
	From   pgtype.Timestamptz `json:"from"`
	To     pgtype.Timestamptz `json:"to"`
	Limit  int32              `json:"limit"`
	Offset int32              `json:"offset"`
}

func (q *Queries) ListPostedTransactions(ctx context.Context, arg ListPostedTransactionsParams) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listPostedTransactions,
		arg.From,
		arg.To,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.Description,
			&i.Metadata,
			&i.EffectiveAt,
			&i.RecordedAt,
			&i.PostedAt,
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
