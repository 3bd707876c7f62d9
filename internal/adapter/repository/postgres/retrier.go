package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/infrastructure/metrics"
)

// Retrier implements usecase.Retrier with exponential backoff. Deadlocks and
// serialization failures are retried a bounded number of times; exhaustion
// surfaces as domain.ErrConcurrentModification.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	metrics         *metrics.Metrics // optional
}

// NewRetrier creates a new PostgreSQL retrier with default settings. m may
// be nil.
func NewRetrier(m *metrics.Metrics) *Retrier {
	return &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		metrics:         m,
	}
}

// Retry executes a unit of work, re-running it on retryable conflicts.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if errors.Is(err, domain.ErrOperationTimeout) {
			if r.metrics != nil {
				r.metrics.LockTimeouts.Inc()
			}

			return backoff.Permanent(err)
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err))
		}

		if r.metrics != nil {
			r.metrics.ConflictRetries.Inc()
		}

		log.Warn().
			Err(err).
			Int("retry", retryCount).
			Msg("retryable database conflict, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
