package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const findUnbalancedTransactions = `-- name: FindUnbalancedTransactions :many
SELECT DISTINCT t.id
FROM transactions t
JOIN entries e ON e.transaction_id = t.id
JOIN accounts a ON a.id = e.account_id
WHERE t.posted_at IS NOT NULL
  AND NOT EXISTS (
      SELECT 1 FROM entries r WHERE r.transaction_id = t.id AND r.reverses IS NOT NULL
  )
GROUP BY t.id, a.currency
HAVING SUM(CASE WHEN e.direction = 'debit' THEN e.amount ELSE -e.amount END) <> 0
ORDER BY t.id
LIMIT $1
`

func (q *Queries) FindUnbalancedTransactions(ctx context.Context, limit int32) ([]string, error) {
	rows, err := q.db.Query(ctx, findUnbalancedTransactions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const totalsByCurrency = `-- name: TotalsByCurrency :many
SELECT
    a.currency,
    COALESCE(SUM(CASE WHEN e.direction = 'debit' THEN e.amount ELSE 0 END), 0)::numeric AS debits,
    COALESCE(SUM(CASE WHEN e.direction = 'credit' THEN e.amount ELSE 0 END), 0)::numeric AS credits
FROM entries e
JOIN accounts a ON a.id = e.account_id
JOIN transactions t ON t.id = e.transaction_id
WHERE t.posted_at IS NOT NULL
GROUP BY a.currency
ORDER BY a.currency
`

type TotalsByCurrencyRow struct {
	Currency string         `json:"currency"`
	Debits   pgtype.Numeric `json:"debits"`
	Credits  pgtype.Numeric `json:"credits"`
}

func (q *Queries) TotalsByCurrency(ctx context.Context) ([]TotalsByCurrencyRow, error) {
	rows, err := q.db.Query(ctx, totalsByCurrency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []TotalsByCurrencyRow{}
	for rows.Next() {
		var i TotalsByCurrencyRow
		if err := rows.Scan(&i.Currency, &i.Debits, &i.Credits); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
