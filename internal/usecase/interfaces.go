package usecase

import (
	"context"
	"time"

	"github.com/tenco/bankcore/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Insert stores a new account and returns its assigned id. A duplicate
	// account number surfaces as domain.ErrInvalidOperation.
	Insert(ctx context.Context, account *domain.Account) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByNumber(ctx context.Context, number string) (*domain.Account, error)
	// FindByNumberForUpdate loads one account inside tx holding a row lock.
	FindByNumberForUpdate(ctx context.Context, tx Transaction, number string) (*domain.Account, error)
	// FindByNumbersForUpdate loads several accounts inside tx, acquiring row
	// locks in ascending account id order regardless of input order.
	FindByNumbersForUpdate(ctx context.Context, tx Transaction, numbers []string) ([]*domain.Account, error)
	// UpdateByID persists the mutable fields of account and returns the
	// number of rows affected.
	UpdateByID(ctx context.Context, tx Transaction, account *domain.Account) (int64, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Account, error)
}

// HistoryRepository defines data access for the append-only transaction log.
type HistoryRepository interface {
	// Insert appends one history entry and returns the number of rows
	// affected. Entries are never updated or deleted.
	Insert(ctx context.Context, tx Transaction, entry *domain.HistoryEntry) (int64, error)
	FindByAccountAndType(ctx context.Context, typ domain.HistoryType, accountID int64, limit, offset int) ([]*domain.HistoryEntry, error)
	CountByAccountAndType(ctx context.Context, typ domain.HistoryType, accountID int64) (int64, error)
}

// Transaction represents one atomic unit of work.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a unit of work on transient conflicts (deadlock,
// serialization failure) a bounded number of times.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// PasswordHasher hashes and verifies account credentials. Verification
// failures surface as domain.ErrInvalidCredential.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// ReferenceGenerator produces unique operation references.
type ReferenceGenerator interface {
	Generate() string
}

// Cache defines caching operations for account reads.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
