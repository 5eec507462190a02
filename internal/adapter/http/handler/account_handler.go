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

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, filter usecase.ListAccountsFilter) ([]*domain.Account, error)
	DeactivateAccount(ctx context.Context, id string) (*domain.Account, error)
	ReactivateAccount(ctx context.Context, id string) (*domain.Account, error)
	GetBalance(ctx context.Context, input usecase.BalanceInput) (*usecase.Balance, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	cache     usecase.Cache
	cacheTTL  time.Duration
}

// NewAccountHandler creates a new AccountHandler. The cache is optional;
// when set, current balance reads are served from it within the TTL.
func NewAccountHandler(accountUC AccountService, cache usecase.Cache, cacheTTL time.Duration) *AccountHandler {
	return &AccountHandler{
		accountUC: accountUC,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ListAccountsFilter{
		OwnerType:      r.URL.Query().Get("owner_type"),
		OwnerID:        r.URL.Query().Get("owner_id"),
		Classification: domain.Classification(r.URL.Query().Get("classification")),
		Currency:       r.URL.Query().Get("currency"),
		ActiveOnly:     r.URL.Query().Get("active") == "true",
		Limit:          parseIntQuery(r, "limit", 20),
		Offset:         parseIntQuery(r, "offset", 0),
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Deactivate marks an account inactive.
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	account, err := h.accountUC.DeactivateAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to deactivate account", err.Error())
		return
	}

	h.invalidateBalance(r.Context(), id)
	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Reactivate marks an inactive account active again.
func (h *AccountHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	account, err := h.accountUC.ReactivateAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reactivate account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetBalance returns the account balance, optionally as of a point in
// time (?as_of=RFC3339). Point-in-time queries bypass the cache.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	asOf, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of parameter", err.Error())
		return
	}

	natural := r.URL.Query().Get("natural") == "true"

	cacheable := h.cache != nil && asOf == nil && !natural
	cacheKey := balanceCacheKey(id)

	if cacheable {
		if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
	}

	balance, err := h.accountUC.GetBalance(r.Context(), usecase.BalanceInput{
		AccountID: id,
		AsOf:      asOf,
		Natural:   natural,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	resp := dto.BalanceFromUseCase(balance)

	if cacheable {
		if body, err := json.Marshal(resp); err == nil {
			h.cache.Set(r.Context(), cacheKey, body, h.cacheTTL)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AccountHandler) invalidateBalance(ctx context.Context, id string) {
	if h.cache == nil {
		return
	}

	h.cache.Delete(ctx, balanceCacheKey(id))
}
