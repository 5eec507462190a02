package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	adaptershttp "github.com/iho/bookkeeper/internal/adapter/http"
	"github.com/iho/bookkeeper/internal/adapter/http/handler"
	"github.com/iho/bookkeeper/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/bookkeeper/internal/adapter/repository/redis"
	infraredis "github.com/iho/bookkeeper/internal/infrastructure/redis"
	"github.com/iho/bookkeeper/internal/usecase"
	"github.com/iho/bookkeeper/tests/testutil"
)

// testEnv wires the full HTTP stack against real Postgres and Redis.
type testEnv struct {
	DB     *testutil.TestDB
	Router http.Handler

	AccountUC  *usecase.AccountUseCase
	PostingUC  *usecase.PostingUseCase
	ReversalUC *usecase.ReversalUseCase
	OutboxRepo *postgres.OutboxRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, entryRepo, outboxRepo, idGen, nil)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, transactionRepo, entryRepo, outboxRepo, idGen, nil).
		WithRetrier(postgres.NewRetrier())
	reversalUC := usecase.NewReversalUseCase(txManager, transactionRepo, entryRepo, outboxRepo, idGen, nil)
	entryUC := usecase.NewEntryUseCase(entryRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, nil)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC, nil, 0),
		TransactionHandler: handler.NewTransactionHandler(postingUC, reversalUC, nil),
		EntryHandler:       handler.NewEntryHandler(entryUC, reversalUC, nil),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
	})

	return &testEnv{
		DB:         testDB,
		Router:     router,
		AccountUC:  accountUC,
		PostingUC:  postingUC,
		ReversalUC: reversalUC,
		OutboxRepo: outboxRepo,
	}
}

// doJSON performs a request against the router and decodes the JSON body
// into out when out is non-nil.
func (e *testEnv) doJSON(t *testing.T, method, path string, payload, out any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	e.Router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}

	return rec
}
