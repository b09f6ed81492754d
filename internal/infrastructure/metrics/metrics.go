package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated prometheus.Counter
	EntriesUpdated prometheus.Counter
	EntriesDeleted prometheus.Counter
	EntryAmount    prometheus.Histogram
	EntryErrors    *prometheus.CounterVec

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram

	// Rate metrics
	RatesAppended prometheus.Counter
	RateLookups   prometheus.Counter

	// Balance metrics
	BalanceUpdates    *prometheus.CounterVec
	BalanceCacheReads *prometheus.CounterVec

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

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Entry metrics
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_entries_created_total",
			Help: "Total number of ledger entries created",
		}),
		EntriesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_entries_updated_total",
			Help: "Total number of ledger entries updated",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_entries_deleted_total",
			Help: "Total number of ledger entries deleted",
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finbooks_entry_amount",
			Help:    "Entry amounts in the entry's own currency",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		EntryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_entry_errors_total",
				Help: "Total number of entry errors by type",
			},
			[]string{"error_type"},
		),

		// Transfer metrics
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_transfers_created_total",
			Help: "Total number of cash transfers created",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finbooks_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),

		// Rate metrics
		RatesAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_rates_appended_total",
			Help: "Total number of exchange rate records appended",
		}),
		RateLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_rate_lookups_total",
			Help: "Total number of date-effective rate lookups",
		}),

		// Balance metrics
		BalanceUpdates: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_balance_updates_total",
				Help: "Total balance aggregate updates by kind",
			},
			[]string{"kind"},
		),
		BalanceCacheReads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_balance_cache_reads_total",
				Help: "Balance cache reads by outcome",
			},
			[]string{"outcome"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbooks_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbooks_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "finbooks_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbooks_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"client"},
		),
	}
}
