package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
	"github.com/iho/bookkeeper/internal/usecase/mocks"
)

func TestEntryUseCase_GetEntry(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo)

	entryRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Entry, error) {
		if id == "entry-1" {
			return &domain.Entry{ID: id, AccountID: "acc-1"}, nil
		}
		return nil, domain.ErrEntryNotFound
	}

	entry, err := uc.GetEntry(context.Background(), "entry-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.AccountID != "acc-1" {
		t.Errorf("expected account acc-1, got %q", entry.AccountID)
	}

	if _, err := uc.GetEntry(context.Background(), "missing"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryUseCase_GetEntriesByAccount(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo)

	var gotLimit, gotOffset int
	entryRepo.GetByAccountFunc = func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	tests := []struct {
		name       string
		input      usecase.GetEntriesByAccountInput
		wantLimit  int
		wantOffset int
	}{
		{
			name:      "defaults applied",
			input:     usecase.GetEntriesByAccountInput{AccountID: "acc-1"},
			wantLimit: domain.DefaultPageSize,
		},
		{
			name:      "limit capped",
			input:     usecase.GetEntriesByAccountInput{AccountID: "acc-1", Limit: 5000},
			wantLimit: domain.MaxPageSize,
		},
		{
			name:       "explicit paging passed through",
			input:      usecase.GetEntriesByAccountInput{AccountID: "acc-1", Limit: 10, Offset: 30},
			wantLimit:  10,
			wantOffset: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.GetEntriesByAccount(context.Background(), tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, gotLimit)
			}
			if gotOffset != tt.wantOffset {
				t.Errorf("expected offset %d, got %d", tt.wantOffset, gotOffset)
			}
		})
	}
}
