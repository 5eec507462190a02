package usecase

import (
	"context"

	"github.com/iho/bookkeeper/internal/domain"
)

// EntryUseCase handles entry read paths.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
	}
}

// GetEntry retrieves a single entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// GetEntriesByAccountInput represents input for listing entries.
type GetEntriesByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// GetEntriesByAccount lists entries for an account, newest effective
// first. This is the account's full history; the balance is derived
// from it.
func (uc *EntryUseCase) GetEntriesByAccount(ctx context.Context, input GetEntriesByAccountInput) ([]*domain.Entry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.GetByAccount(ctx, input.AccountID, limit, offset)
}

// GetEntriesByTransaction lists the entries of a transaction.
func (uc *EntryUseCase) GetEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	return uc.entryRepo.GetByTransaction(ctx, transactionID)
}
