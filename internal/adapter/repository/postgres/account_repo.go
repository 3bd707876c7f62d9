package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository on PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, number, password, balance, user_id, created_at`

// Insert stores a new account and returns its assigned id.
func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (int64, error) {
	query := `
		INSERT INTO account (number, password, balance, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		account.Number,
		account.Password,
		account.Balance,
		account.UserID,
		account.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, classifyError(err)
	}

	return id, nil
}

// FindByID retrieves an account by id.
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM account WHERE id = $1`

	return r.scanRow(r.pool.QueryRow(ctx, query, id))
}

// FindByNumber retrieves an account by its account number.
func (r *AccountRepository) FindByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM account WHERE number = $1`

	return r.scanRow(r.pool.QueryRow(ctx, query, number))
}

// FindByNumberForUpdate retrieves an account by number holding a FOR UPDATE
// row lock inside tx.
func (r *AccountRepository) FindByNumberForUpdate(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + accountColumns + ` FROM account WHERE number = $1 FOR UPDATE`

	return r.scanRow(pgxTx.QueryRow(ctx, query, number))
}

// FindByNumbersForUpdate retrieves accounts by number, locking rows in
// ascending id order so crossing transfers cannot deadlock.
func (r *AccountRepository) FindByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + accountColumns + `
		FROM account
		WHERE number = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, numbers)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Number,
			&account.Password,
			&account.Balance,
			&account.UserID,
			&account.CreatedAt,
		); err != nil {
			return nil, classifyError(err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return accounts, nil
}

// UpdateByID persists the account's mutable fields and returns the affected
// row count.
func (r *AccountRepository) UpdateByID(ctx context.Context, tx usecase.Transaction, account *domain.Account) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE account SET balance = $2, password = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, account.ID, account.Balance, account.Password)
	if err != nil {
		return 0, classifyError(err)
	}

	return tag.RowsAffected(), nil
}

// CountByUserID returns the number of accounts the user owns.
func (r *AccountRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM account WHERE user_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, classifyError(err)
	}

	return count, nil
}

// FindByUserID lists the user's accounts ordered by account id.
func (r *AccountRepository) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM account
		WHERE user_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Number,
			&account.Password,
			&account.Balance,
			&account.UserID,
			&account.CreatedAt,
		); err != nil {
			return nil, classifyError(err)
		}
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}

func (r *AccountRepository) scanRow(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Number,
		&account.Password,
		&account.Balance,
		&account.UserID,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, classifyError(err)
	}

	return &account, nil
}
