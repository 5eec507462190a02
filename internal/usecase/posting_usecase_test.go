package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
	"github.com/iho/bookkeeper/internal/usecase/mocks"
)

type postingFixture struct {
	uc              *usecase.PostingUseCase
	accountRepo     *mocks.MockAccountRepository
	transactionRepo *mocks.MockTransactionRepository
	entryRepo       *mocks.MockEntryRepository
	outboxRepo      *mocks.MockOutboxRepository
}

func newPostingFixture(t *testing.T) *postingFixture {
	t.Helper()

	f := &postingFixture{
		accountRepo:     mocks.NewMockAccountRepository(),
		transactionRepo: mocks.NewMockTransactionRepository(),
		entryRepo:       mocks.NewMockEntryRepository(),
		outboxRepo:      mocks.NewMockOutboxRepository(),
	}
	f.uc = usecase.NewPostingUseCase(
		mocks.NewMockTxManager(),
		f.accountRepo,
		f.transactionRepo,
		f.entryRepo,
		f.outboxRepo,
		mocks.NewMockIDGenerator(),
		nil,
	)
	return f
}

func (f *postingFixture) seedAccount(t *testing.T, id, currency string, classification domain.Classification, active bool) {
	t.Helper()

	err := f.accountRepo.Create(context.Background(), &domain.Account{
		ID:             id,
		Name:           id,
		Classification: classification,
		Currency:       currency,
		Active:         active,
	})
	if err != nil {
		t.Fatalf("seed account %s: %v", id, err)
	}
}

func TestPostingUseCase_PostTransaction_Balanced(t *testing.T) {
	f := newPostingFixture(t)
	f.seedAccount(t, "receivable", "USD", domain.ClassificationReceivable, true)
	f.seedAccount(t, "revenue", "USD", domain.ClassificationRevenue, true)

	amount := decimal.RequireFromString("100.00")

	transaction, err := f.uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		Description: "invoice 42",
		Entries: []usecase.EntryInput{
			{AccountID: "receivable", Amount: amount, Direction: domain.DirectionDebit},
			{AccountID: "revenue", Amount: amount, Direction: domain.DirectionCredit},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !transaction.IsPosted() {
		t.Error("expected transaction to be posted")
	}
	if len(transaction.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(transaction.Entries))
	}
	for _, e := range transaction.Entries {
		if e.TransactionID != transaction.ID {
			t.Errorf("entry %s not linked to transaction", e.ID)
		}
	}

	events := f.outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeTransactionPosted {
		t.Errorf("expected one transaction.posted event, got %v", events)
	}
}

func TestPostingUseCase_PostTransaction_Unbalanced(t *testing.T) {
	f := newPostingFixture(t)
	f.seedAccount(t, "receivable", "USD", domain.ClassificationReceivable, true)
	f.seedAccount(t, "revenue", "USD", domain.ClassificationRevenue, true)

	var created int
	f.transactionRepo.CreateFunc = func(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
		created++
		return nil
	}
	f.entryRepo.CreateFunc = func(ctx context.Context, tx usecase.Tx, entry *domain.Entry) error {
		created++
		return nil
	}

	_, err := f.uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		Description: "off by five",
		Entries: []usecase.EntryInput{
			{AccountID: "receivable", Amount: decimal.RequireFromString("100.00"), Direction: domain.DirectionDebit},
			{AccountID: "revenue", Amount: decimal.RequireFromString("95.00"), Direction: domain.DirectionCredit},
		},
	})

	if !errors.Is(err, domain.ErrUnbalancedTransaction) {
		t.Fatalf("expected ErrUnbalancedTransaction, got %v", err)
	}

	var ub *domain.UnbalancedError
	if !errors.As(err, &ub) {
		t.Fatalf("expected *domain.UnbalancedError, got %T", err)
	}
	if ub.Currency != "USD" {
		t.Errorf("expected currency USD, got %q", ub.Currency)
	}
	if !ub.Debits.Equal(decimal.RequireFromString("100.00")) || !ub.Credits.Equal(decimal.RequireFromString("95.00")) {
		t.Errorf("expected totals 100.00/95.00, got %s/%s", ub.Debits, ub.Credits)
	}

	if created != 0 {
		t.Errorf("expected nothing persisted, got %d writes", created)
	}
}

func TestPostingUseCase_PostTransaction_Validation(t *testing.T) {
	amount := decimal.RequireFromString("50.00")

	tests := []struct {
		name      string
		entries   []usecase.EntryInput
		wantError error
	}{
		{
			name: "single entry rejected",
			entries: []usecase.EntryInput{
				{AccountID: "receivable", Amount: amount, Direction: domain.DirectionDebit},
			},
			wantError: domain.ErrInsufficientEntries,
		},
		{
			name:      "empty entries rejected",
			entries:   nil,
			wantError: domain.ErrInsufficientEntries,
		},
		{
			name: "zero magnitude rejected",
			entries: []usecase.EntryInput{
				{AccountID: "receivable", Amount: decimal.Zero, Direction: domain.DirectionDebit},
				{AccountID: "revenue", Amount: decimal.Zero, Direction: domain.DirectionCredit},
			},
			wantError: domain.ErrInvalidMagnitude,
		},
		{
			name: "negative magnitude rejected",
			entries: []usecase.EntryInput{
				{AccountID: "receivable", Amount: decimal.RequireFromString("-10.00"), Direction: domain.DirectionDebit},
				{AccountID: "revenue", Amount: decimal.RequireFromString("10.00"), Direction: domain.DirectionCredit},
			},
			wantError: domain.ErrInvalidMagnitude,
		},
		{
			name: "unknown direction rejected",
			entries: []usecase.EntryInput{
				{AccountID: "receivable", Amount: amount, Direction: domain.Direction("sideways")},
				{AccountID: "revenue", Amount: amount, Direction: domain.DirectionCredit},
			},
			wantError: domain.ErrInvalidDirection,
		},
		{
			name: "unknown account rejected",
			entries: []usecase.EntryInput{
				{AccountID: "nope", Amount: amount, Direction: domain.DirectionDebit},
				{AccountID: "revenue", Amount: amount, Direction: domain.DirectionCredit},
			},
			wantError: domain.ErrAccountNotFound,
		},
		{
			name: "inactive account rejected",
			entries: []usecase.EntryInput{
				{AccountID: "closed", Amount: amount, Direction: domain.DirectionDebit},
				{AccountID: "revenue", Amount: amount, Direction: domain.DirectionCredit},
			},
			wantError: domain.ErrInactiveAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostingFixture(t)
			f.seedAccount(t, "receivable", "USD", domain.ClassificationReceivable, true)
			f.seedAccount(t, "revenue", "USD", domain.ClassificationRevenue, true)
			f.seedAccount(t, "closed", "USD", domain.ClassificationExpense, false)

			_, err := f.uc.PostTransaction(context.Background(), usecase.PostTransactionInput{Entries: tt.entries})
			if !errors.Is(err, tt.wantError) {
				t.Errorf("expected %v, got %v", tt.wantError, err)
			}
		})
	}
}

func TestPostingUseCase_PostTransaction_MultiCurrency(t *testing.T) {
	f := newPostingFixture(t)
	f.seedAccount(t, "usd-cash", "USD", domain.ClassificationAsset, true)
	f.seedAccount(t, "usd-revenue", "USD", domain.ClassificationRevenue, true)
	f.seedAccount(t, "eur-cash", "EUR", domain.ClassificationAsset, true)
	f.seedAccount(t, "eur-revenue", "EUR", domain.ClassificationRevenue, true)

	usd := decimal.RequireFromString("100.00")
	eur := decimal.RequireFromString("80.00")

	// Each currency group balances independently.
	_, err := f.uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		Description: "cross border sale",
		Entries: []usecase.EntryInput{
			{AccountID: "usd-cash", Amount: usd, Direction: domain.DirectionDebit},
			{AccountID: "usd-revenue", Amount: usd, Direction: domain.DirectionCredit},
			{AccountID: "eur-cash", Amount: eur, Direction: domain.DirectionDebit},
			{AccountID: "eur-revenue", Amount: eur, Direction: domain.DirectionCredit},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A USD debit against an EUR credit never balances, even with equal
	// magnitudes. Every currency group is one-sided, so the diagnostic
	// names the mismatch rather than an arbitrary group.
	_, err = f.uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		Description: "currency mixing",
		Entries: []usecase.EntryInput{
			{AccountID: "usd-cash", Amount: usd, Direction: domain.DirectionDebit},
			{AccountID: "eur-revenue", Amount: usd, Direction: domain.DirectionCredit},
		},
	})
	if !errors.Is(err, domain.ErrCurrencyMismatch) {
		t.Errorf("expected ErrCurrencyMismatch, got %v", err)
	}

	// One balanced group plus one two-sided unbalanced group is a plain
	// unbalanced transaction, reported against the failing currency.
	_, err = f.uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		Description: "partial eur leg",
		Entries: []usecase.EntryInput{
			{AccountID: "usd-cash", Amount: usd, Direction: domain.DirectionDebit},
			{AccountID: "usd-revenue", Amount: usd, Direction: domain.DirectionCredit},
			{AccountID: "eur-cash", Amount: eur, Direction: domain.DirectionDebit},
			{AccountID: "eur-revenue", Amount: decimal.RequireFromString("79.00"), Direction: domain.DirectionCredit},
		},
	})
	var ub *domain.UnbalancedError
	if !errors.As(err, &ub) {
		t.Fatalf("expected *domain.UnbalancedError, got %v", err)
	}
	if ub.Currency != "EUR" {
		t.Errorf("expected currency EUR, got %q", ub.Currency)
	}
}

type recordingRetrier struct {
	calls int
}

func (r *recordingRetrier) Retry(ctx context.Context, operation func() error) error {
	r.calls++
	return operation()
}

func TestPostingUseCase_PostTransaction_UsesRetrier(t *testing.T) {
	f := newPostingFixture(t)
	f.seedAccount(t, "receivable", "USD", domain.ClassificationReceivable, true)
	f.seedAccount(t, "revenue", "USD", domain.ClassificationRevenue, true)

	retrier := &recordingRetrier{}
	f.uc.WithRetrier(retrier)

	amount := decimal.RequireFromString("10.00")
	_, err := f.uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		Entries: []usecase.EntryInput{
			{AccountID: "receivable", Amount: amount, Direction: domain.DirectionDebit},
			{AccountID: "revenue", Amount: amount, Direction: domain.DirectionCredit},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if retrier.calls != 1 {
		t.Errorf("expected posting to run through the retrier once, got %d", retrier.calls)
	}
}

func TestPostingUseCase_DraftLifecycle(t *testing.T) {
	f := newPostingFixture(t)
	f.seedAccount(t, "receivable", "USD", domain.ClassificationReceivable, true)
	f.seedAccount(t, "revenue", "USD", domain.ClassificationRevenue, true)

	ctx := context.Background()
	amount := decimal.RequireFromString("25.00")

	draft, err := f.uc.CreateDraft(ctx, usecase.CreateDraftInput{Description: "pending invoice"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if draft.IsPosted() {
		t.Fatal("new draft must not be posted")
	}

	// A draft with one entry cannot post.
	if _, err := f.uc.AddEntry(ctx, draft.ID, usecase.EntryInput{
		AccountID: "receivable", Amount: amount, Direction: domain.DirectionDebit,
	}); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if _, err := f.uc.Post(ctx, draft.ID); !errors.Is(err, domain.ErrInsufficientEntries) {
		t.Fatalf("expected ErrInsufficientEntries, got %v", err)
	}

	if _, err := f.uc.AddEntry(ctx, draft.ID, usecase.EntryInput{
		AccountID: "revenue", Amount: amount, Direction: domain.DirectionCredit,
	}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	posted, err := f.uc.Post(ctx, draft.ID)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if !posted.IsPosted() {
		t.Error("expected posted transaction")
	}

	// Posting is terminal: no further entries, no re-post, no delete.
	if _, err := f.uc.AddEntry(ctx, draft.ID, usecase.EntryInput{
		AccountID: "receivable", Amount: amount, Direction: domain.DirectionDebit,
	}); !errors.Is(err, domain.ErrImmutableTransaction) {
		t.Errorf("expected ErrImmutableTransaction on AddEntry, got %v", err)
	}
	if _, err := f.uc.Post(ctx, draft.ID); !errors.Is(err, domain.ErrImmutableTransaction) {
		t.Errorf("expected ErrImmutableTransaction on Post, got %v", err)
	}
	if err := f.uc.DeleteDraft(ctx, draft.ID); !errors.Is(err, domain.ErrImmutableTransaction) {
		t.Errorf("expected ErrImmutableTransaction on DeleteDraft, got %v", err)
	}
}

func TestPostingUseCase_Post_Unbalanced(t *testing.T) {
	f := newPostingFixture(t)
	f.seedAccount(t, "receivable", "USD", domain.ClassificationReceivable, true)
	f.seedAccount(t, "revenue", "USD", domain.ClassificationRevenue, true)

	ctx := context.Background()

	draft, err := f.uc.CreateDraft(ctx, usecase.CreateDraftInput{Description: "lopsided"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	if _, err := f.uc.AddEntry(ctx, draft.ID, usecase.EntryInput{
		AccountID: "receivable", Amount: decimal.RequireFromString("70.00"), Direction: domain.DirectionDebit,
	}); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if _, err := f.uc.AddEntry(ctx, draft.ID, usecase.EntryInput{
		AccountID: "revenue", Amount: decimal.RequireFromString("60.00"), Direction: domain.DirectionCredit,
	}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	if _, err := f.uc.Post(ctx, draft.ID); !errors.Is(err, domain.ErrUnbalancedTransaction) {
		t.Fatalf("expected ErrUnbalancedTransaction, got %v", err)
	}

	// The draft survives a failed post attempt.
	got, err := f.uc.GetTransaction(ctx, draft.ID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if got.IsPosted() {
		t.Error("failed post must leave the draft unposted")
	}
}

func TestPostingUseCase_DeleteDraft(t *testing.T) {
	f := newPostingFixture(t)
	f.seedAccount(t, "receivable", "USD", domain.ClassificationReceivable, true)

	ctx := context.Background()

	draft, err := f.uc.CreateDraft(ctx, usecase.CreateDraftInput{Description: "scratch"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := f.uc.AddEntry(ctx, draft.ID, usecase.EntryInput{
		AccountID: "receivable", Amount: decimal.RequireFromString("5.00"), Direction: domain.DirectionDebit,
	}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	if err := f.uc.DeleteDraft(ctx, draft.ID); err != nil {
		t.Fatalf("delete draft: %v", err)
	}

	if _, err := f.uc.GetTransaction(ctx, draft.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}

	entries, err := f.entryRepo.GetByTransaction(ctx, draft.ID)
	if err != nil {
		t.Fatalf("get entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected cascade delete of entries, got %d", len(entries))
	}
}
