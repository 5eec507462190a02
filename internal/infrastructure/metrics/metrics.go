package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	TransactionsPosted prometheus.Counter
	EntriesRecorded    prometheus.Counter
	PostingDuration    prometheus.Histogram
	PostingErrors      *prometheus.CounterVec
	DraftsCreated      prometheus.Counter
	DraftsDeleted      prometheus.Counter

	// Reversal metrics
	EntriesReversed      prometheus.Counter
	TransactionsReversed prometheus.Counter

	// Account metrics
	AccountsCreated     prometheus.Counter
	AccountsDeactivated prometheus.Counter
	AccountOperations   *prometheus.CounterVec

	// Balance metrics
	BalanceQueries  prometheus.Counter
	BalanceDuration prometheus.Histogram
	BalanceCacheHit *prometheus.CounterVec

	// Consistency metrics
	ConsistencyChecks      prometheus.Counter
	UnbalancedTransactions prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished *prometheus.CounterVec
	OutboxLag       prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Posting metrics
		TransactionsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_transactions_posted_total",
			Help: "Total number of transactions posted",
		}),
		EntriesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_entries_recorded_total",
			Help: "Total number of entries recorded",
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeper_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_posting_errors_total",
				Help: "Total number of posting errors by type",
			},
			[]string{"error_type"},
		),
		DraftsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_drafts_created_total",
			Help: "Total number of draft transactions created",
		}),
		DraftsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_drafts_deleted_total",
			Help: "Total number of draft transactions deleted",
		}),

		// Reversal metrics
		EntriesReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_entries_reversed_total",
			Help: "Total number of entries reversed",
		}),
		TransactionsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_transactions_reversed_total",
			Help: "Total number of transactions reversed in full",
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_deactivated_total",
			Help: "Total number of accounts deactivated",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		// Balance metrics
		BalanceQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_balance_queries_total",
			Help: "Total number of balance queries",
		}),
		BalanceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeper_balance_duration_seconds",
			Help:    "Duration of balance queries",
			Buckets: prometheus.DefBuckets,
		}),
		BalanceCacheHit: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_balance_cache_total",
				Help: "Balance cache hits and misses",
			},
			[]string{"result"},
		),

		// Consistency metrics
		ConsistencyChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_consistency_checks_total",
			Help: "Total number of ledger consistency checks",
		}),
		UnbalancedTransactions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bookkeeper_unbalanced_transactions",
			Help: "Unbalanced posted transactions found by the last check",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookkeeper_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookkeeper_db_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bookkeeper_db_connections",
			Help: "Current database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		OutboxPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_outbox_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		OutboxLag: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bookkeeper_outbox_lag",
			Help: "Unpublished outbox events at the last poll",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_rate_limit_hits_total",
				Help: "Total rate limit rejections",
			},
			[]string{"endpoint"},
		),
	}
}
