package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/infrastructure/metrics"
)

// AccountUseCase handles account creation and read-only account queries.
type AccountUseCase struct {
	accountRepo AccountRepository
	hasher      PasswordHasher
	cache       Cache            // optional
	metrics     *metrics.Metrics // optional
}

// NewAccountUseCase creates a new AccountUseCase. cache and m may be nil.
func NewAccountUseCase(accountRepo AccountRepository, hasher PasswordHasher, cache Cache, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		hasher:      hasher,
		cache:       cache,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Number         string
	Password       string
	InitialBalance int64
	UserID         int64
}

// CreateAccount creates a new account with the caller-assigned number and a
// hashed credential. The initial balance must not be negative.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountNumber(input.Number); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if input.InitialBalance < 0 {
		return nil, domain.ErrInvalidAmount
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Number:    input.Number,
		Password:  hash,
		Balance:   input.InitialBalance,
		UserID:    input.UserID,
		CreatedAt: time.Now().UTC(),
	}

	id, err := uc.accountRepo.Insert(ctx, account)
	if err != nil {
		return nil, err
	}

	account.ID = id

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by id, preferring the read cache.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	key := accountCacheKey(id)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil {
			var account domain.Account
			if err := json.Unmarshal([]byte(cached), &account); err == nil {
				return &account, nil
			}
		}
	}

	account, err := uc.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(account); err == nil {
			_ = uc.cache.Set(ctx, key, string(data), AccountCacheTTL)
		}
	}

	return account, nil
}

// ListAccountsInput represents input for listing a user's accounts.
type ListAccountsInput struct {
	UserID int64
	Page   int
	Size   int
}

// ListAccounts returns one page of the user's accounts ordered by account id
// plus the total count for pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, int64, error) {
	limit, offset, err := domain.ValidatePage(input.Page, input.Size)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.accountRepo.CountByUserID(ctx, input.UserID)
	if err != nil {
		return nil, 0, err
	}

	accounts, err := uc.accountRepo.FindByUserID(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func accountCacheKey(id int64) string {
	return fmt.Sprintf("account:%d", id)
}
