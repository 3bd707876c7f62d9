package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tenco/bankcore/internal/domain"
)

// PostgreSQL error codes the repositories classify.
const (
	pgErrUniqueViolation      = "23505"
	pgErrCheckViolation       = "23514"
	pgErrLockNotAvailable     = "55P03"
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// classifyError maps driver errors onto the domain taxonomy. Deadlocks and
// serialization failures are left untouched so the retrier can see them.
func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation, pgErrCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidOperation, pgErr.ConstraintName)
		case pgErrLockNotAvailable:
			return domain.ErrOperationTimeout
		case pgErrDeadlock, pgErrSerializationFailure:
			return err
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
