package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (id, owner_type, owner_id, number, name, classification, currency, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, owner_type, owner_id, number, name, classification, currency, active, created_at, updated_at
`

type CreateAccountParams struct {
	ID             string             `json:"id"`
	OwnerType      string             `json:"owner_type"`
	OwnerID        string             `json:"owner_id"`
	Number         string             `json:"number"`
	Name           string             `json:"name"`
	Classification string             `json:"classification"`
	Currency       string             `json:"currency"`
	Active         bool               `json:"active"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx, createAccount,
		arg.ID,
		arg.OwnerType,
		arg.OwnerID,
		arg.Number,
		arg.Name,
		arg.Classification,
		arg.Currency,
		arg.Active,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.OwnerType,
		&i.OwnerID,
		&i.Number,
		&i.Name,
		&i.Classification,
		&i.Currency,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByID = `-- name: GetAccountByID :one
SELECT id, owner_type, owner_id, number, name, classification, currency, active, created_at, updated_at FROM accounts WHERE id = $1
`

func (q *Queries) GetAccountByID(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByID, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.OwnerType,
		&i.OwnerID,
		&i.Number,
		&i.Name,
		&i.Classification,
		&i.Currency,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountsByIDs = `-- name: GetAccountsByIDs :many
SELECT id, owner_type, owner_id, number, name, classification, currency, active, created_at, updated_at FROM accounts WHERE id = ANY($1::text[]) ORDER BY id
`

func (q *Queries) GetAccountsByIDs(ctx context.Context, dollar_1 []string) ([]Account, error) {
	rows, err := q.db.Query(ctx, getAccountsByIDs, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.OwnerType,
			&i.OwnerID,
			&i.Number,
			&i.Name,
			&i.Classification,
			&i.Currency,
			&i.Active,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const setAccountActive = `-- name: SetAccountActive :exec
UPDATE accounts
SET active = $2, updated_at = $3
WHERE id = $1
`

type SetAccountActiveParams struct {
	ID        string             `json:"id"`
	Active    bool               `json:"active"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) SetAccountActive(ctx context.Context, arg SetAccountActiveParams) error {
	_, err := q.db.Exec(ctx, setAccountActive, arg.ID, arg.Active, arg.UpdatedAt)
	return err
}

const listAccounts = `-- name: ListAccounts :many
SELECT id, owner_type, owner_id, number, name, classification, currency, active, created_at, updated_at FROM accounts
WHERE ($1::text = '' OR owner_type = $1)
  AND ($2::text = '' OR owner_id = $2)
  AND ($3::text = '' OR classification = $3)
  AND ($4::text = '' OR currency = $4)
  AND (NOT $5::bool OR active)
ORDER BY created_at DESC
LIMIT $6 OFFSET $7
`

type ListAccountsParams struct {
	OwnerType      string `json:"owner_type"`
	OwnerID        string `json:"owner_id"`
	Classification string `json:"classification"`
	Currency       string `json:"currency"`
	ActiveOnly     bool   `json:"active_only"`
	Limit          int32  `json:"limit"`
	Offset         int32  `json:"offset"`
}

func (q *Queries) ListAccounts(ctx context.Context, arg ListAccountsParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccounts,
		arg.OwnerType,
		arg.OwnerID,
		arg.Classification,
		arg.Currency,
		arg.ActiveOnly,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.OwnerType,
			&i.OwnerID,
			&i.Number,
			&i.Name,
			&i.Classification,
			&i.Currency,
			&i.Active,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const countAccounts = `-- name: CountAccounts :one
SELECT COUNT(*) FROM accounts
`

func (q *Queries) CountAccounts(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countAccounts)
	var count int64
	err := row.Scan(&count)
	return count, err
}
