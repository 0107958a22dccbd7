package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	TransactionsPosted  *prometheus.CounterVec
	TransactionsDeleted prometheus.Counter
	TransactionAmount   *prometheus.HistogramVec
	LedgerErrors        *prometheus.CounterVec

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Access grant metrics
	AccessRequests  prometheus.Counter
	AccessApprovals prometheus.Counter
	AccessVerifies  *prometheus.CounterVec

	// Session metrics
	Logins         *prometheus.CounterVec
	ActiveSessions prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Realtime metrics
	WebsocketConnections prometheus.Gauge
	EventsPushed         *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyman_transactions_posted_total",
				Help: "Total number of ledger entries posted by kind",
			},
			[]string{"kind"},
		),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneyman_transactions_deleted_total",
			Help: "Total number of ledger entries deleted",
		}),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneyman_transaction_amount",
				Help:    "Absolute transaction amounts by kind",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"kind"},
		),
		LedgerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyman_ledger_errors_total",
				Help: "Total number of rejected ledger operations by reason",
			},
			[]string{"reason"},
		),

		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneyman_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "moneyman_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneyman_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyman_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		AccessRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneyman_access_requests_total",
			Help: "Total number of pairing requests",
		}),
		AccessApprovals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneyman_access_approvals_total",
			Help: "Total number of approved pairing requests",
		}),
		AccessVerifies: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyman_access_verifies_total",
				Help: "Total number of code verification attempts by outcome",
			},
			[]string{"outcome"},
		),

		Logins: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyman_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "moneyman_active_sessions",
			Help: "Number of currently active sessions",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyman_http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneyman_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		WebsocketConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "moneyman_websocket_connections",
			Help: "Number of open websocket connections",
		}),
		EventsPushed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyman_events_pushed_total",
				Help: "Total realtime events pushed by event name",
			},
			[]string{"event"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyman_rate_limit_hits_total",
				Help: "Total requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}
