package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenco/bankcore/internal/usecase"
)

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager. Every transaction carries
// a bounded lock_timeout so no unit of work can wait on a row lock forever.
type TxManager struct {
	pool        pgxPool
	lockTimeout time.Duration
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool, lockTimeout time.Duration) *TxManager {
	return newTxManagerWithPool(pool, lockTimeout)
}

func newTxManagerWithPool(pool pgxPool, lockTimeout time.Duration) *TxManager {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}

	return &TxManager{pool: pool, lockTimeout: lockTimeout}
}

// Begin starts a new transaction with the configured lock timeout.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	// SET LOCAL scopes the timeout to this transaction only.
	setTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, setTimeout); err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
