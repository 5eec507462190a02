package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
)

// ReversalUseCase produces balancing transactions that negate previously
// posted entries. Originals are never mutated; a reversal is just
// another posted fact.
type ReversalUseCase struct {
	txManager       TxManager
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewReversalUseCase creates a new ReversalUseCase. The metrics
// parameter may be nil.
func NewReversalUseCase(
	txManager TxManager,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ReversalUseCase {
	return &ReversalUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// ReverseEntryInput represents input for reversing a single entry.
type ReverseEntryInput struct {
	EntryID     string
	Reason      string
	EffectiveAt *time.Time
}

// ReverseEntry posts a new transaction containing one entry on the same
// account with the opposite direction and identical magnitude, tagged
// with a reference back to the original. Reversing an already-reversed
// entry is permitted; callers needing at-most-once semantics check the
// reversal chain via ListReversals first.
func (uc *ReversalUseCase) ReverseEntry(ctx context.Context, input ReverseEntryInput) (*domain.Transaction, error) {
	original, err := uc.entryRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	parent, err := uc.transactionRepo.GetByID(ctx, original.TransactionID)
	if err != nil {
		return nil, err
	}

	if !parent.IsPosted() {
		return nil, domain.ErrCannotReverseDraft
	}

	now := time.Now().UTC()

	effectiveAt := now
	if input.EffectiveAt != nil {
		effectiveAt = input.EffectiveAt.UTC()
	}

	reversal := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		Description: "Reversal: " + input.Reason,
		Metadata: map[string]any{
			"reverses_entry_id": original.ID,
			"reason":            input.Reason,
		},
		EffectiveAt: effectiveAt,
		RecordedAt:  now,
	}

	entryID := original.ID
	reversal.Entries = []*domain.Entry{{
		ID:            uc.idGen.Generate(),
		TransactionID: reversal.ID,
		AccountID:     original.AccountID,
		Amount:        original.Amount,
		Direction:     original.Direction.Opposite(),
		Description:   fmt.Sprintf("Reversal of entry %s: %s", original.ID, input.Reason),
		EffectiveAt:   effectiveAt,
		RecordedAt:    now,
		Reverses:      &entryID,
	}}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   reversal.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeEntryReversed,
		Payload: map[string]any{
			"reversal_transaction_id": reversal.ID,
			"original_entry_id":       original.ID,
			"account_id":              original.AccountID,
			"amount":                  original.Amount.String(),
			"reason":                  input.Reason,
		},
		CreatedAt: now,
	}

	if err := uc.persist(ctx, reversal, event, now); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesReversed.Inc()
	}

	return reversal, nil
}

// ReverseTransactionInput represents input for reversing every entry of
// a posted transaction at once.
type ReverseTransactionInput struct {
	TransactionID string
	Reason        string
	EffectiveAt   *time.Time
}

// ReverseTransaction posts one balancing transaction that negates every
// entry of the original, each reversal entry referencing the entry it
// negates.
func (uc *ReversalUseCase) ReverseTransaction(ctx context.Context, input ReverseTransactionInput) (*domain.Transaction, error) {
	parent, err := uc.transactionRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	if !parent.IsPosted() {
		return nil, domain.ErrCannotReverseDraft
	}

	originals, err := uc.entryRepo.GetByTransaction(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	effectiveAt := now
	if input.EffectiveAt != nil {
		effectiveAt = input.EffectiveAt.UTC()
	}

	reversal := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		Description: "Reversal: " + input.Reason,
		Metadata: map[string]any{
			"reverses_transaction_id": parent.ID,
			"reason":                  input.Reason,
		},
		EffectiveAt: effectiveAt,
		RecordedAt:  now,
	}

	for _, original := range originals {
		entryID := original.ID
		reversal.Entries = append(reversal.Entries, &domain.Entry{
			ID:            uc.idGen.Generate(),
			TransactionID: reversal.ID,
			AccountID:     original.AccountID,
			Amount:        original.Amount,
			Direction:     original.Direction.Opposite(),
			Description:   fmt.Sprintf("Reversal of entry %s: %s", original.ID, input.Reason),
			EffectiveAt:   effectiveAt,
			RecordedAt:    now,
			Reverses:      &entryID,
		})
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   reversal.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeEntryReversed,
		Payload: map[string]any{
			"reversal_transaction_id": reversal.ID,
			"original_transaction_id": parent.ID,
			"entry_count":             len(reversal.Entries),
			"reason":                  input.Reason,
		},
		CreatedAt: now,
	}

	if err := uc.persist(ctx, reversal, event, now); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsReversed.Inc()
		uc.metrics.EntriesReversed.Add(float64(len(reversal.Entries)))
	}

	return reversal, nil
}

// ListReversals returns the entries that reverse the given entry. An
// empty result means the entry has not been reversed.
func (uc *ReversalUseCase) ListReversals(ctx context.Context, entryID string) ([]*domain.Entry, error) {
	if _, err := uc.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}

	return uc.entryRepo.GetReversals(ctx, entryID)
}

func (uc *ReversalUseCase) persist(ctx context.Context, reversal *domain.Transaction, event *domain.OutboxEvent, now time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, reversal); err != nil {
		return err
	}

	for _, entry := range reversal.Entries {
		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := uc.transactionRepo.MarkPosted(ctx, tx, reversal.ID, now); err != nil {
		return err
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	reversal.PostedAt = &now

	return nil
}
