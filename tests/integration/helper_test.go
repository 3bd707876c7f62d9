package integration

import (
	"context"
	"testing"

	"github.com/tenco/bankcore/internal/adapter/repository/postgres"
	"github.com/tenco/bankcore/internal/infrastructure/auth"
	"github.com/tenco/bankcore/internal/usecase"
	"github.com/tenco/bankcore/tests/testutil"
)

type engine struct {
	db     *testutil.TestDB
	hasher *auth.PasswordHasher

	accountUC     *usecase.AccountUseCase
	transactionUC *usecase.TransactionUseCase
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(db.Cleanup)

	accountRepo := postgres.NewAccountRepository(db.Pool)
	historyRepo := postgres.NewHistoryRepository(db.Pool)
	txManager := postgres.NewTxManager(db.Pool, 0)
	retrier := postgres.NewRetrier(nil)
	refGen := postgres.NewULIDGenerator()
	hasher := auth.NewPasswordHasher()

	return &engine{
		db:            db,
		hasher:        hasher,
		accountUC:     usecase.NewAccountUseCase(accountRepo, hasher, nil, nil),
		transactionUC: usecase.NewTransactionUseCase(txManager, accountRepo, historyRepo, retrier, hasher, refGen, nil, nil),
	}
}

// seedAccount creates an account whose password is the bcrypt hash of pw.
func (e *engine) seedAccount(ctx context.Context, t *testing.T, number, pw string, balance, userID int64) int64 {
	t.Helper()

	hash, err := e.hasher.Hash(pw)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return e.db.CreateTestAccount(ctx, number, hash, balance, userID).ID
}
