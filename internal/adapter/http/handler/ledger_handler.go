package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// LedgerHandler handles ledger-wide HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency runs the ledger-wide balance check. An inconsistent
// ledger is still a successful check; the report carries the verdict.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil && !errors.Is(err, usecase.ErrInconsistentLedger) {
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(report))
}
