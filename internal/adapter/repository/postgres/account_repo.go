package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/postgres/generated"
	"github.com/iho/bookkeeper/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.queries.CreateAccount(ctx, createAccountParams(account))
	return err
}

// CreateTx creates a new account within a transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateAccount(ctx, createAccountParams(account))
	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDs retrieves multiple accounts by IDs within a transaction.
func (r *AccountRepository) GetByIDs(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// SetActive flips the active flag of an account.
func (r *AccountRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	return r.queries.SetAccountActive(ctx, generated.SetAccountActiveParams{
		ID:        id,
		Active:    active,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// List lists accounts matching the filter.
func (r *AccountRepository) List(ctx context.Context, filter usecase.ListAccountsFilter) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		OwnerType:      filter.OwnerType,
		OwnerID:        filter.OwnerID,
		Classification: string(filter.Classification),
		Currency:       filter.Currency,
		ActiveOnly:     filter.ActiveOnly,
		Limit:          int32(filter.Limit),
		Offset:         int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func createAccountParams(account *domain.Account) generated.CreateAccountParams {
	return generated.CreateAccountParams{
		ID:             account.ID,
		OwnerType:      account.OwnerType,
		OwnerID:        account.OwnerID,
		Number:         account.Number,
		Name:           account.Name,
		Classification: string(account.Classification),
		Currency:       account.Currency,
		Active:         account.Active,
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	}
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		OwnerType:      row.OwnerType,
		OwnerID:        row.OwnerID,
		Number:         row.Number,
		Name:           row.Name,
		Classification: domain.Classification(row.Classification),
		Currency:       row.Currency,
		Active:         row.Active,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
