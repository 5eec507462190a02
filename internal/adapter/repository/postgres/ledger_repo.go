package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// FindUnbalancedTransactions scans posted transactions for currency
// groups whose entries do not net to zero. Reversal transactions are
// excluded.
func (r *LedgerRepository) FindUnbalancedTransactions(ctx context.Context, limit int) ([]string, error) {
	return r.queries.FindUnbalancedTransactions(ctx, int32(limit))
}

// TotalsByCurrency sums posted debit and credit magnitudes per currency.
func (r *LedgerRepository) TotalsByCurrency(ctx context.Context) (map[string]domain.CurrencyTotals, error) {
	rows, err := r.queries.TotalsByCurrency(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]domain.CurrencyTotals, len(rows))
	for _, row := range rows {
		totals[row.Currency] = domain.CurrencyTotals{
			Debits:  numericToDecimal(row.Debits),
			Credits: numericToDecimal(row.Credits),
		}
	}

	return totals, nil
}
