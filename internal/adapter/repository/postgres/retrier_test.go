package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tenco/bankcore/internal/domain"
)

func newTestRetrier() *Retrier {
	r := NewRetrier(nil)
	r.maxRetries = 2
	r.initialInterval = time.Millisecond
	r.maxInterval = 5 * time.Millisecond
	r.maxElapsedTime = time.Second
	return r
}

func TestRetrier_SucceedsFirstAttempt(t *testing.T) {
	r := newTestRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetrier_RetriesDeadlock(t *testing.T) {
	r := newTestRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetrier_ExhaustedRetriesIsConcurrentModification(t *testing.T) {
	r := newTestRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})
	if !errors.Is(err, domain.ErrConcurrentModification) {
		t.Fatalf("Retry() error = %v, want ErrConcurrentModification", err)
	}
	// maxRetries bounds the re-runs, not the total attempts.
	if calls != r.maxRetries+1 {
		t.Errorf("calls = %d, want %d", calls, r.maxRetries+1)
	}
}

func TestRetrier_LockTimeoutIsPermanent(t *testing.T) {
	r := newTestRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return domain.ErrOperationTimeout
	})
	if !errors.Is(err, domain.ErrOperationTimeout) {
		t.Fatalf("Retry() error = %v, want ErrOperationTimeout", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetrier_NonRetryableStopsImmediately(t *testing.T) {
	r := newTestRetrier()

	calls := 0
	wantErr := errors.New("boom")
	err := r.Retry(context.Background(), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Retry() error = %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &pgconn.PgError{Code: pgErrDeadlock}, true},
		{"serialization failure", &pgconn.PgError{Code: pgErrSerializationFailure}, true},
		{"unique violation", &pgconn.PgError{Code: pgErrUniqueViolation}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError() = %v, want %v", got, tt.want)
			}
		})
	}
}
