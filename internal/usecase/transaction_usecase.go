package usecase

import (
	"context"
	"time"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/infrastructure/metrics"
)

// TransactionUseCase is the account transaction engine. Every mutating
// operation runs as one atomic unit of work: the touched account rows are
// locked for the duration of the transaction, the balance update and the
// history append commit together or not at all.
type TransactionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	historyRepo HistoryRepository
	retrier     Retrier
	hasher      PasswordHasher
	refGen      ReferenceGenerator
	cache       Cache            // optional
	metrics     *metrics.Metrics // optional
}

// NewTransactionUseCase creates a new TransactionUseCase. cache and m may be
// nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	historyRepo HistoryRepository,
	retrier Retrier,
	hasher PasswordHasher,
	refGen ReferenceGenerator,
	cache Cache,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		retrier:     retrier,
		hasher:      hasher,
		refGen:      refGen,
		cache:       cache,
		metrics:     m,
	}
}

// Deposit credits amount to the account identified by number. Ownership is
// deliberately not checked: third parties may deposit into any known account
// number. callerUserID is carried for auditing only.
func (uc *TransactionUseCase) Deposit(ctx context.Context, number string, amount int64, callerUserID int64) (*domain.HistoryEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	start := time.Now()

	var entry *domain.HistoryEntry

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.FindByNumberForUpdate(ctx, tx, number)
		if err != nil {
			return err
		}

		if err := account.Deposit(amount); err != nil {
			return err
		}

		newBalance := account.Balance
		entry = &domain.HistoryEntry{
			Reference: uc.refGen.Generate(),
			Amount:    amount,
			DBalance:  &newBalance,
			DAccount:  &account.ID,
			CreatedAt: time.Now().UTC(),
		}

		if err := uc.persist(ctx, tx, entry, account); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	uc.observe("deposit", start, err)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, *entry.DAccount)

	return entry, nil
}

// Withdraw debits amount from the caller's own account after the full check
// sequence: existence, ownership, credential, balance.
func (uc *TransactionUseCase) Withdraw(ctx context.Context, number, password string, amount int64, callerUserID int64) (*domain.HistoryEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	start := time.Now()

	var entry *domain.HistoryEntry

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.FindByNumberForUpdate(ctx, tx, number)
		if err != nil {
			return err
		}

		if err := account.CheckOwner(callerUserID); err != nil {
			return err
		}

		if err := uc.hasher.Verify(account.Password, password); err != nil {
			return err
		}

		if err := account.CheckBalance(amount); err != nil {
			return err
		}

		if err := account.Withdraw(amount); err != nil {
			return err
		}

		newBalance := account.Balance
		entry = &domain.HistoryEntry{
			Reference: uc.refGen.Generate(),
			Amount:    amount,
			WBalance:  &newBalance,
			WAccount:  &account.ID,
			CreatedAt: time.Now().UTC(),
		}

		if err := uc.persist(ctx, tx, entry, account); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	uc.observe("withdraw", start, err)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, *entry.WAccount)

	return entry, nil
}

// Transfer moves amount from the caller's account to another account. Both
// rows are locked in ascending account id order inside one transaction, so
// two transfers crossing in opposite directions cannot deadlock. The deposit
// side is credited before the withdrawal side is debited; the ordering is
// fixed for reproducibility and is never externally observable.
func (uc *TransactionUseCase) Transfer(ctx context.Context, fromNumber, password, toNumber string, amount int64, callerUserID int64) (*domain.HistoryEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	if fromNumber == toNumber {
		return nil, domain.ErrInvalidOperation
	}

	start := time.Now()

	var entry *domain.HistoryEntry

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		accounts, err := uc.accountRepo.FindByNumbersForUpdate(ctx, tx, []string{fromNumber, toNumber})
		if err != nil {
			return err
		}

		var from, to *domain.Account
		for _, a := range accounts {
			switch a.Number {
			case fromNumber:
				from = a
			case toNumber:
				to = a
			}
		}

		if from == nil || to == nil {
			return domain.ErrAccountNotFound
		}

		if err := from.CheckOwner(callerUserID); err != nil {
			return err
		}

		if err := uc.hasher.Verify(from.Password, password); err != nil {
			return err
		}

		if err := from.CheckBalance(amount); err != nil {
			return err
		}

		if err := to.Deposit(amount); err != nil {
			return err
		}

		if rows, err := uc.accountRepo.UpdateByID(ctx, tx, to); err != nil {
			return err
		} else if rows != 1 {
			return domain.ErrOperationFailed
		}

		if err := from.Withdraw(amount); err != nil {
			return err
		}

		if rows, err := uc.accountRepo.UpdateByID(ctx, tx, from); err != nil {
			return err
		} else if rows != 1 {
			return domain.ErrOperationFailed
		}

		wBalance, dBalance := from.Balance, to.Balance
		entry = &domain.HistoryEntry{
			Reference: uc.refGen.Generate(),
			Amount:    amount,
			WBalance:  &wBalance,
			DBalance:  &dBalance,
			WAccount:  &from.ID,
			DAccount:  &to.ID,
			CreatedAt: time.Now().UTC(),
		}

		if err := uc.appendHistory(ctx, tx, entry); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	uc.observe("transfer", start, err)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, *entry.WAccount)
	uc.invalidate(ctx, *entry.DAccount)

	return entry, nil
}

// GetHistoryInput represents input for one page of transaction history.
type GetHistoryInput struct {
	Type      domain.HistoryType
	AccountID int64
	Page      int
	Size      int
}

// GetHistory returns one page of history entries for an account, newest
// first, plus the total count under the same filter.
func (uc *TransactionUseCase) GetHistory(ctx context.Context, input GetHistoryInput) ([]*domain.HistoryEntry, int64, error) {
	if !input.Type.IsValid() {
		return nil, 0, domain.ErrInvalidOperation
	}

	limit, offset, err := domain.ValidatePage(input.Page, input.Size)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.historyRepo.CountByAccountAndType(ctx, input.Type, input.AccountID)
	if err != nil {
		return nil, 0, err
	}

	entries, err := uc.historyRepo.FindByAccountAndType(ctx, input.Type, input.AccountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// persist writes one account's balance and appends the history entry,
// treating any row count other than one as a failed operation.
func (uc *TransactionUseCase) persist(ctx context.Context, tx Transaction, entry *domain.HistoryEntry, account *domain.Account) error {
	rows, err := uc.accountRepo.UpdateByID(ctx, tx, account)
	if err != nil {
		return err
	}
	if rows != 1 {
		return domain.ErrOperationFailed
	}

	return uc.appendHistory(ctx, tx, entry)
}

func (uc *TransactionUseCase) appendHistory(ctx context.Context, tx Transaction, entry *domain.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	rows, err := uc.historyRepo.Insert(ctx, tx, entry)
	if err != nil {
		return err
	}
	if rows != 1 {
		return domain.ErrOperationFailed
	}

	return nil
}

func (uc *TransactionUseCase) invalidate(ctx context.Context, accountID int64) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, accountCacheKey(accountID))
}

func (uc *TransactionUseCase) observe(operation string, start time.Time, err error) {
	if uc.metrics == nil {
		return
	}

	if err != nil {
		uc.metrics.OperationErrors.WithLabelValues(operation).Inc()
		return
	}

	uc.metrics.OperationsTotal.WithLabelValues(operation).Inc()
	uc.metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
