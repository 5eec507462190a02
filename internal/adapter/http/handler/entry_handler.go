package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)
	GetEntriesByAccount(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error)
	GetEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC    EntryService
	reversalUC ReversalService
	cache      usecase.Cache
}

// NewEntryHandler creates a new EntryHandler. The cache is optional;
// when set, cached balances of accounts touched by a reversal are
// invalidated on success.
func NewEntryHandler(entryUC EntryService, reversalUC ReversalService, cache usecase.Cache) *EntryHandler {
	return &EntryHandler{
		entryUC:    entryUC,
		reversalUC: reversalUC,
		cache:      cache,
	}
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.entryUC.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// ListByAccount lists entries for an account.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	entries, err := h.entryUC.GetEntriesByAccount(r.Context(), usecase.GetEntriesByAccountInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// ListByTransaction lists the entries of a transaction.
func (h *EntryHandler) ListByTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")

	entries, err := h.entryUC.GetEntriesByTransaction(r.Context(), transactionID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// Reverse posts a balancing transaction for a single entry.
func (h *EntryHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reversal, err := h.reversalUC.ReverseEntry(r.Context(), usecase.ReverseEntryInput{
		EntryID:     id,
		Reason:      req.Reason,
		EffectiveAt: req.EffectiveAt,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reverse entry", err.Error())
		return
	}

	invalidateBalances(r.Context(), h.cache, reversal.Entries)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(reversal))
}

// ListReversals lists the entries that reverse the given entry.
func (h *EntryHandler) ListReversals(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := h.reversalUC.ListReversals(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list reversals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}
