package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TxManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. The metrics parameter
// may be nil.
func NewAccountUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerType      string
	OwnerID        string
	Number         string
	Name           string
	Classification domain.Classification
	Currency       string
}

// CreateAccount creates a new account. The currency is fixed for the
// lifetime of the account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateClassification(input.Classification); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		OwnerType:      input.OwnerType,
		OwnerID:        input.OwnerID,
		Number:         input.Number,
		Name:           input.Name,
		Classification: input.Classification,
		Currency:       strings.ToUpper(strings.TrimSpace(input.Currency)),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountCreated,
		Payload: map[string]any{
			"account_id":     account.ID,
			"owner_id":       account.OwnerID,
			"classification": string(account.Classification),
			"currency":       account.Currency,
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
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists accounts matching the filter.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.accountRepo.List(ctx, filter)
}

// DeactivateAccount marks an account inactive. The account keeps its
// history and stays queryable; new entries against it are rejected.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.setActive(ctx, id, false)
}

// ReactivateAccount marks an inactive account active again.
func (uc *AccountUseCase) ReactivateAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.setActive(ctx, id, true)
}

func (uc *AccountUseCase) setActive(ctx context.Context, id string, active bool) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.SetActive(ctx, id, active, now); err != nil {
		return nil, err
	}

	account.Active = active
	account.UpdatedAt = now

	if uc.metrics != nil && !active {
		uc.metrics.AccountsDeactivated.Inc()
	}

	return account, nil
}

// BalanceInput represents input for a balance query.
type BalanceInput struct {
	AccountID string
	// AsOf restricts the balance to entries effective at or before the
	// given moment. Nil means now.
	AsOf *time.Time
	// Natural adjusts the raw debit-minus-credit figure by the account's
	// classification so credit-normal accounts read positive.
	Natural bool
}

// Balance is the result of a balance query.
type Balance struct {
	AccountID string
	Currency  string
	AsOf      time.Time
	Debits    decimal.Decimal
	Credits   decimal.Decimal
	Balance   decimal.Decimal
}

// GetBalance computes the account balance as of a point in time by
// aggregating entries of posted transactions. The balance is never
// stored; it is always derived.
func (uc *AccountUseCase) GetBalance(ctx context.Context, input BalanceInput) (*Balance, error) {
	start := time.Now()

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	asOf := time.Now().UTC()
	if input.AsOf != nil {
		asOf = input.AsOf.UTC()
	}

	debits, credits, err := uc.entryRepo.SumAsOf(ctx, input.AccountID, asOf)
	if err != nil {
		return nil, err
	}

	balance := debits.Sub(credits)
	if input.Natural {
		balance = balance.Mul(decimal.NewFromInt(account.Classification.NormalSign()))
	}

	if uc.metrics != nil {
		uc.metrics.BalanceQueries.Inc()
		uc.metrics.BalanceDuration.Observe(time.Since(start).Seconds())
	}

	return &Balance{
		AccountID: account.ID,
		Currency:  account.Currency,
		AsOf:      asOf,
		Debits:    debits,
		Credits:   credits,
		Balance:   balance,
	}, nil
}
