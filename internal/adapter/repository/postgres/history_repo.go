package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/usecase"
)

// HistoryRepository implements usecase.HistoryRepository on PostgreSQL. The
// history table is append-only; rows are never updated or deleted.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Insert appends one history entry inside tx and returns the affected row
// count.
func (r *HistoryRepository) Insert(ctx context.Context, tx usecase.Transaction, entry *domain.HistoryEntry) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO history (reference, amount, w_balance, d_balance, w_account_id, d_account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	tag, err := pgxTx.Exec(ctx, query,
		entry.Reference,
		entry.Amount,
		entry.WBalance,
		entry.DBalance,
		entry.WAccount,
		entry.DAccount,
		entry.CreatedAt,
	)
	if err != nil {
		return 0, classifyError(err)
	}

	return tag.RowsAffected(), nil
}

// typeFilter returns the WHERE clause matching the account's role for typ.
func typeFilter(typ domain.HistoryType) string {
	switch typ {
	case domain.HistoryWithdrawal:
		return `h.w_account_id = $1`
	case domain.HistoryDeposit:
		return `h.d_account_id = $1`
	default:
		return `(h.w_account_id = $1 OR h.d_account_id = $1)`
	}
}

// FindByAccountAndType lists history entries newest first where the account
// participated in the given role, joining both side account numbers.
func (r *HistoryRepository) FindByAccountAndType(ctx context.Context, typ domain.HistoryType, accountID int64, limit, offset int) ([]*domain.HistoryEntry, error) {
	query := `
		SELECT h.id, h.reference, h.amount, h.w_balance, h.d_balance,
		       h.w_account_id, h.d_account_id, h.created_at,
		       COALESCE(wa.number, ''), COALESCE(da.number, '')
		FROM history h
		LEFT JOIN account wa ON wa.id = h.w_account_id
		LEFT JOIN account da ON da.id = h.d_account_id
		WHERE ` + typeFilter(typ) + `
		ORDER BY h.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Reference,
			&entry.Amount,
			&entry.WBalance,
			&entry.DBalance,
			&entry.WAccount,
			&entry.DAccount,
			&entry.CreatedAt,
			&entry.WAccountNumber,
			&entry.DAccountNumber,
		); err != nil {
			return nil, classifyError(err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// CountByAccountAndType counts entries under the same filter used by
// FindByAccountAndType.
func (r *HistoryRepository) CountByAccountAndType(ctx context.Context, typ domain.HistoryType, accountID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM history h WHERE ` + typeFilter(typ)

	var count int64
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, classifyError(err)
	}

	return count, nil
}
