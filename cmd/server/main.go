package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/bookkeeper/internal/adapter/http"
	"github.com/iho/bookkeeper/internal/adapter/http/handler"
	"github.com/iho/bookkeeper/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/bookkeeper/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/bookkeeper/internal/adapter/repository/redis"
	"github.com/iho/bookkeeper/internal/infrastructure/config"
	"github.com/iho/bookkeeper/internal/infrastructure/eventpublisher"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
	"github.com/iho/bookkeeper/internal/infrastructure/postgres"
	"github.com/iho/bookkeeper/internal/infrastructure/redis"
	"github.com/iho/bookkeeper/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize metrics
	m := metrics.New()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, entryRepo, outboxRepo, idGen, m)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, transactionRepo, entryRepo, outboxRepo, idGen, m).
		WithRetrier(postgresRepo.NewRetrier())
	reversalUC := usecase.NewReversalUseCase(txManager, transactionRepo, entryRepo, outboxRepo, idGen, m)
	entryUC := usecase.NewEntryUseCase(entryRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, m)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC, cache, cfg.BalanceCacheTTL)
	transactionHandler := handler.NewTransactionHandler(postingUC, reversalUC, cache)
	entryHandler := handler.NewEntryHandler(entryUC, reversalUC, cache)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		EntryHandler:       entryHandler,
		LedgerHandler:      ledgerHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logging:            middleware.NewLoggingMiddleware(log.Logger),
	})

	// Start the outbox publisher
	publisherCtx, cancelPublisher := context.WithCancel(ctx)
	defer cancelPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slog.Default()),
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancelPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
