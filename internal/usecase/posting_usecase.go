package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
)

// PostingUseCase handles transaction recording: the draft lifecycle and
// the one-shot balanced posting operation.
type PostingUseCase struct {
	txManager       TxManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
	retrier         Retrier
}

// NewPostingUseCase creates a new PostingUseCase. The metrics parameter
// may be nil.
func NewPostingUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// WithRetrier makes posting retry on transient storage errors. Without
// one, transient errors surface to the caller.
func (uc *PostingUseCase) WithRetrier(r Retrier) *PostingUseCase {
	uc.retrier = r
	return uc
}

func (uc *PostingUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}

// EntryInput represents one leg of a transaction to record.
type EntryInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Direction   domain.Direction
	Description string
	Metadata    map[string]any
}

// PostTransactionInput represents input for posting a balanced
// transaction in one operation.
type PostTransactionInput struct {
	Description string
	EffectiveAt *time.Time
	Metadata    map[string]any
	Entries     []EntryInput
}

// PostTransaction validates, persists, and posts a balanced transaction
// atomically. Either every row exists and the transaction is posted, or
// nothing is persisted.
func (uc *PostingUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*domain.Transaction, error) {
	start := time.Now()

	// Validate inputs before starting the storage transaction.
	if len(input.Entries) < 2 {
		return nil, domain.ErrInsufficientEntries
	}

	for _, ei := range input.Entries {
		if err := domain.ValidateAmount(ei.Amount); err != nil {
			return nil, err
		}

		if !ei.Direction.Valid() {
			return nil, domain.ErrInvalidDirection
		}

		if err := domain.ValidateDescription(ei.Description); err != nil {
			return nil, err
		}
	}

	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	var transaction *domain.Transaction

	// Each attempt runs in a fresh storage transaction with fresh IDs;
	// nothing from a failed attempt is persisted.
	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		accounts, err := uc.resolveAccounts(ctx, tx, input.Entries)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		effectiveAt := now
		if input.EffectiveAt != nil {
			effectiveAt = input.EffectiveAt.UTC()
		}

		attempt := &domain.Transaction{
			ID:          uc.idGen.Generate(),
			Description: input.Description,
			Metadata:    input.Metadata,
			EffectiveAt: effectiveAt,
			RecordedAt:  now,
		}

		for _, ei := range input.Entries {
			attempt.Entries = append(attempt.Entries, &domain.Entry{
				ID:            uc.idGen.Generate(),
				TransactionID: attempt.ID,
				AccountID:     ei.AccountID,
				Amount:        ei.Amount,
				Direction:     ei.Direction,
				Description:   ei.Description,
				EffectiveAt:   effectiveAt,
				RecordedAt:    now,
				Metadata:      ei.Metadata,
			})
		}

		// Balance check: per currency group, debits must equal credits.
		if err := validateBalanced(attempt.Entries, accounts); err != nil {
			return err
		}

		if err := uc.transactionRepo.Create(ctx, tx, attempt); err != nil {
			return err
		}

		for _, entry := range attempt.Entries {
			if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
				return err
			}
		}

		if err := uc.transactionRepo.MarkPosted(ctx, tx, attempt.ID, now); err != nil {
			return err
		}

		attempt.PostedAt = &now

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   attempt.ID,
			AggregateType: domain.AggregateTypeTransaction,
			EventType:     domain.EventTypeTransactionPosted,
			Payload: map[string]any{
				"transaction_id": attempt.ID,
				"description":    attempt.Description,
				"entry_count":    len(attempt.Entries),
				"effective_at":   effectiveAt.Format(time.RFC3339Nano),
			},
			CreatedAt: now,
		}

		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		transaction = attempt

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsPosted.Inc()
		uc.metrics.EntriesRecorded.Add(float64(len(transaction.Entries)))
		uc.metrics.PostingDuration.Observe(time.Since(start).Seconds())
	}

	return transaction, nil
}

// CreateDraftInput represents input for creating a draft transaction.
type CreateDraftInput struct {
	Description string
	EffectiveAt *time.Time
	Metadata    map[string]any
}

// CreateDraft creates an unposted transaction with no entries. Entries
// are attached with AddEntry and committed with Post.
func (uc *PostingUseCase) CreateDraft(ctx context.Context, input CreateDraftInput) (*domain.Transaction, error) {
	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	effectiveAt := now
	if input.EffectiveAt != nil {
		effectiveAt = input.EffectiveAt.UTC()
	}

	transaction := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		Description: input.Description,
		Metadata:    input.Metadata,
		EffectiveAt: effectiveAt,
		RecordedAt:  now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DraftsCreated.Inc()
	}

	return transaction, nil
}

// AddEntry attaches an entry to a draft transaction. Entries of a posted
// transaction can never be added, changed, or removed.
func (uc *PostingUseCase) AddEntry(ctx context.Context, transactionID string, input EntryInput) (*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !input.Direction.Valid() {
		return nil, domain.ErrInvalidDirection
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.IsPosted() {
		return nil, domain.ErrImmutableTransaction
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.resolveAccounts(ctx, tx, []EntryInput{input}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	entry := &domain.Entry{
		ID:            uc.idGen.Generate(),
		TransactionID: transaction.ID,
		AccountID:     input.AccountID,
		Amount:        input.Amount,
		Direction:     input.Direction,
		Description:   input.Description,
		EffectiveAt:   transaction.EffectiveAt,
		RecordedAt:    now,
		Metadata:      input.Metadata,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// Post validates and posts a draft transaction, making it immutable.
func (uc *PostingUseCase) Post(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.IsPosted() {
		return nil, domain.ErrImmutableTransaction
	}

	entries, err := uc.entryRepo.GetByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if len(entries) < 2 {
		return nil, domain.ErrInsufficientEntries
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountsForEntries(ctx, tx, entries)
	if err != nil {
		return nil, err
	}

	if err := validateBalanced(entries, accounts); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.transactionRepo.MarkPosted(ctx, tx, transactionID, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   transactionID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionPosted,
		Payload: map[string]any{
			"transaction_id": transactionID,
			"description":    transaction.Description,
			"entry_count":    len(entries),
			"effective_at":   transaction.EffectiveAt.Format(time.RFC3339Nano),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsPosted.Inc()
		uc.metrics.EntriesRecorded.Add(float64(len(entries)))
	}

	transaction.PostedAt = &now
	transaction.Entries = entries

	return transaction, nil
}

// DeleteDraft removes a draft transaction and its entries. Posted
// transactions have no deletion path.
func (uc *PostingUseCase) DeleteDraft(ctx context.Context, transactionID string) error {
	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if transaction.IsPosted() {
		return domain.ErrImmutableTransaction
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.entryRepo.DeleteByTransaction(ctx, tx, transactionID); err != nil {
		return err
	}

	if err := uc.transactionRepo.DeleteDraft(ctx, tx, transactionID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.DraftsDeleted.Inc()
	}

	return nil
}

// GetTransaction retrieves a transaction with its entries.
func (uc *PostingUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.GetByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	transaction.Entries = entries

	return transaction, nil
}

// ListPostedInput represents input for audit scans over posted
// transactions.
type ListPostedInput struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// ListPosted lists posted transactions by recorded time, newest first.
func (uc *PostingUseCase) ListPosted(ctx context.Context, input ListPostedInput) ([]*domain.Transaction, error) {
	input.Limit, input.Offset = domain.ValidatePagination(input.Limit, input.Offset)

	if input.To.IsZero() {
		input.To = time.Now().UTC()
	}

	return uc.transactionRepo.ListPosted(ctx, input.From, input.To, input.Limit, input.Offset)
}

// resolveAccounts loads and checks the target accounts of the given
// entry inputs. Missing accounts and inactive accounts reject the whole
// operation.
func (uc *PostingUseCase) resolveAccounts(ctx context.Context, tx Tx, entries []EntryInput) (map[string]*domain.Account, error) {
	seen := make(map[string]bool)

	var ids []string
	for _, ei := range entries {
		if !seen[ei.AccountID] {
			seen[ei.AccountID] = true
			ids = append(ids, ei.AccountID)
		}
	}

	accounts, err := uc.accountRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		if !a.Active {
			return nil, domain.ErrInactiveAccount
		}

		accountMap[a.ID] = a
	}

	return accountMap, nil
}

func (uc *PostingUseCase) accountsForEntries(ctx context.Context, tx Tx, entries []*domain.Entry) (map[string]*domain.Account, error) {
	inputs := make([]EntryInput, len(entries))
	for i, e := range entries {
		inputs[i] = EntryInput{AccountID: e.AccountID}
	}

	return uc.resolveAccounts(ctx, tx, inputs)
}

// validateBalanced checks that debits equal credits within every
// currency group. A transaction may carry independently balanced legs in
// several currencies; it may never balance one currency against another.
func validateBalanced(entries []*domain.Entry, accounts map[string]*domain.Account) error {
	totals := domain.SumByCurrency(entries, accounts)

	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	unbalanced := 0
	oneSided := 0
	for _, currency := range currencies {
		ct := totals[currency]
		if ct.Balanced() {
			continue
		}
		unbalanced++
		if ct.Debits.IsZero() || ct.Credits.IsZero() {
			oneSided++
		}
	}

	if unbalanced == 0 {
		return nil
	}

	// A debit in one currency paired with a credit in another leaves
	// every failing group one-sided. Name the real problem instead of
	// reporting an arbitrary currency as unbalanced.
	if len(currencies) > 1 && unbalanced > 1 && oneSided == unbalanced {
		return domain.ErrCurrencyMismatch
	}

	for _, currency := range currencies {
		ct := totals[currency]
		if !ct.Balanced() {
			return &domain.UnbalancedError{
				Currency: currency,
				Debits:   ct.Debits,
				Credits:  ct.Credits,
			}
		}
	}

	return nil
}
