package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus metrics.
type Metrics struct {
	// Engine metrics, labelled by operation (deposit, withdraw, transfer)
	OperationsTotal   *prometheus.CounterVec
	OperationErrors   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// Concurrency metrics
	ConflictRetries prometheus.Counter
	LockTimeouts    prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		OperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_operations_total",
				Help: "Total number of committed engine operations",
			},
			[]string{"operation"},
		),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_operation_errors_total",
				Help: "Total number of failed engine operations",
			},
			[]string{"operation"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_operation_duration_seconds",
				Help:    "Duration of committed engine operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		ConflictRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_conflict_retries_total",
			Help: "Total number of unit-of-work retries after conflicts",
		}),
		LockTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_lock_timeouts_total",
			Help: "Total number of operations aborted waiting for a row lock",
		}),
	}
}
