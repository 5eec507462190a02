package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
)

var (
	// ErrInconsistentLedger is returned when a posted transaction fails
	// the per-currency balance invariant.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// ConsistencyReport summarizes a ledger-wide invariant check.
type ConsistencyReport struct {
	Consistent             bool
	UnbalancedTransactions []string
	TotalsByCurrency       map[string]domain.CurrencyTotals
	CheckedAt              time.Time
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
	metrics    *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. The metrics parameter
// may be nil.
func NewLedgerUseCase(ledgerRepo LedgerRepository, metrics *metrics.Metrics) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
		metrics:    metrics,
	}
}

// CheckConsistency verifies that every posted transaction balances per
// currency. Reversal transactions are exempt: a single-entry reversal
// intentionally negates one leg of an earlier transaction and cannot
// balance on its own.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	unbalanced, err := uc.ledgerRepo.FindUnbalancedTransactions(ctx, ConsistencyScanLimit)
	if err != nil {
		return nil, err
	}

	totals, err := uc.ledgerRepo.TotalsByCurrency(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		Consistent:             len(unbalanced) == 0,
		UnbalancedTransactions: unbalanced,
		TotalsByCurrency:       totals,
		CheckedAt:              time.Now().UTC(),
	}

	if uc.metrics != nil {
		uc.metrics.ConsistencyChecks.Inc()
		uc.metrics.UnbalancedTransactions.Set(float64(len(unbalanced)))
	}

	if !report.Consistent {
		return report, ErrInconsistentLedger
	}

	return report, nil
}
