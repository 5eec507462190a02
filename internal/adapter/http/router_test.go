package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookkeeper/internal/adapter/http/handler"
	apimiddleware "github.com/iho/bookkeeper/internal/adapter/http/middleware"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
	"github.com/iho/bookkeeper/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"owner_type":"user","owner_id":"u1","name":"Main","classification":"asset","currency":"USD"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/balance",
		"POST /api/v1/transactions/",
		"POST /api/v1/transactions/drafts",
		"POST /api/v1/transactions/{id}/post",
		"POST /api/v1/transactions/{id}/reverse",
		"POST /api/v1/entries/{id}/reverse",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	accountHandler := handler.NewAccountHandler(&stubAccountService{}, nil, 0)

	postingSvc := &stubPostingService{}
	reversalSvc := &stubReversalService{}
	transactionHandler := handler.NewTransactionHandler(postingSvc, reversalSvc, nil)

	entryUC := usecase.NewEntryUseCase(mocks.NewMockEntryRepository())
	entryHandler := handler.NewEntryHandler(entryUC, reversalSvc, nil)

	ledgerHandler := handler.NewLedgerHandler(usecase.NewLedgerUseCase(mocks.NewMockLedgerRepository(), nil))

	cfg := RouterConfig{
		HealthHandler:      &handler.HealthHandler{},
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		EntryHandler:       entryHandler,
		LedgerHandler:      ledgerHandler,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc"}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, filter usecase.ListAccountsFilter) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountService) DeactivateAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) ReactivateAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id, Active: true}, nil
}

func (stubAccountService) GetBalance(ctx context.Context, input usecase.BalanceInput) (*usecase.Balance, error) {
	return &usecase.Balance{AccountID: input.AccountID}, nil
}

type stubPostingService struct{}

func (stubPostingService) PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "txn"}, nil
}

func (stubPostingService) CreateDraft(ctx context.Context, input usecase.CreateDraftInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "draft"}, nil
}

func (stubPostingService) AddEntry(ctx context.Context, transactionID string, input usecase.EntryInput) (*domain.Entry, error) {
	return &domain.Entry{ID: "entry", TransactionID: transactionID}, nil
}

func (stubPostingService) Post(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: transactionID}, nil
}

func (stubPostingService) DeleteDraft(ctx context.Context, transactionID string) error {
	return nil
}

func (stubPostingService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: id}, nil
}

func (stubPostingService) ListPosted(ctx context.Context, input usecase.ListPostedInput) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

type stubReversalService struct{}

func (stubReversalService) ReverseEntry(ctx context.Context, input usecase.ReverseEntryInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "reversal"}, nil
}

func (stubReversalService) ReverseTransaction(ctx context.Context, input usecase.ReverseTransactionInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "reversal"}, nil
}

func (stubReversalService) ListReversals(ctx context.Context, entryID string) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
