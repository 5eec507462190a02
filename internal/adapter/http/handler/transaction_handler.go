package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// PostingService defines the behavior needed by TransactionHandler.
type PostingService interface {
	PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*domain.Transaction, error)
	CreateDraft(ctx context.Context, input usecase.CreateDraftInput) (*domain.Transaction, error)
	AddEntry(ctx context.Context, transactionID string, input usecase.EntryInput) (*domain.Entry, error)
	Post(ctx context.Context, transactionID string) (*domain.Transaction, error)
	DeleteDraft(ctx context.Context, transactionID string) error
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListPosted(ctx context.Context, input usecase.ListPostedInput) ([]*domain.Transaction, error)
}

// ReversalService defines the reversal behavior needed by handlers.
type ReversalService interface {
	ReverseEntry(ctx context.Context, input usecase.ReverseEntryInput) (*domain.Transaction, error)
	ReverseTransaction(ctx context.Context, input usecase.ReverseTransactionInput) (*domain.Transaction, error)
	ListReversals(ctx context.Context, entryID string) ([]*domain.Entry, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	postingUC  PostingService
	reversalUC ReversalService
	cache      usecase.Cache
}

// NewTransactionHandler creates a new TransactionHandler. The cache is
// optional; when set, cached balances of accounts touched by a posting
// or reversal are invalidated on success.
func NewTransactionHandler(postingUC PostingService, reversalUC ReversalService, cache usecase.Cache) *TransactionHandler {
	return &TransactionHandler{
		postingUC:  postingUC,
		reversalUC: reversalUC,
		cache:      cache,
	}
}

// Post validates and posts a balanced transaction in one call.
func (h *TransactionHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.postingUC.PostTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post transaction", err.Error())
		return
	}

	invalidateBalances(r.Context(), h.cache, transaction.Entries)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// CreateDraft creates an empty draft transaction.
func (h *TransactionHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.postingUC.CreateDraft(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create draft", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// AddEntry attaches an entry to a draft transaction.
func (h *TransactionHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.EntryItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.postingUC.AddEntry(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// PostDraft posts a draft transaction, making it immutable.
func (h *TransactionHandler) PostDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	transaction, err := h.postingUC.Post(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post draft", err.Error())
		return
	}

	invalidateBalances(r.Context(), h.cache, transaction.Entries)
	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// DeleteDraft removes a draft transaction and its entries.
func (h *TransactionHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.postingUC.DeleteDraft(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete draft", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a transaction with its entries.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	transaction, err := h.postingUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// List lists posted transactions recorded within a time window.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from parameter", err.Error())
		return
	}

	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to parameter", err.Error())
		return
	}

	input := usecase.ListPostedInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if from != nil {
		input.From = *from
	}
	if to != nil {
		input.To = *to
	} else {
		input.To = time.Now().UTC()
	}

	transactions, err := h.postingUC.ListPosted(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}

// Reverse posts a balancing transaction that negates every entry of the
// given posted transaction.
func (h *TransactionHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reversal, err := h.reversalUC.ReverseTransaction(r.Context(), usecase.ReverseTransactionInput{
		TransactionID: id,
		Reason:        req.Reason,
		EffectiveAt:   req.EffectiveAt,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reverse transaction", err.Error())
		return
	}

	invalidateBalances(r.Context(), h.cache, reversal.Entries)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(reversal))
}
