package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// balanceCacheKey builds the cache key under which GetBalance stores the
// current raw balance of an account.
func balanceCacheKey(accountID string) string {
	return "balance:" + accountID
}

// invalidateBalances drops cached balances for every account touched by
// the given entries, so a read after a committed write never sees the
// pre-write figure. Delete failures are ignored; the stale key expires
// with its TTL.
func invalidateBalances(ctx context.Context, cache usecase.Cache, entries []*domain.Entry) {
	if cache == nil {
		return
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.AccountID] {
			continue
		}
		seen[e.AccountID] = true
		cache.Delete(ctx, balanceCacheKey(e.AccountID))
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrImmutableTransaction),
		errors.Is(err, domain.ErrCannotReverseDraft):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnbalancedTransaction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidClassification),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInsufficientEntries),
		errors.Is(err, domain.ErrInvalidMagnitude),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInactiveAccount),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrMetadataTooLarge),
		errors.Is(err, domain.ErrDescriptionTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseTimeQuery parses an RFC 3339 query parameter. Nil means absent.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
