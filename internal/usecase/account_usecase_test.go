package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/usecase"
	"github.com/tenco/bankcore/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name: "valid account",
			input: usecase.CreateAccountInput{
				Number:         "110-001",
				Password:       "1234",
				InitialBalance: 1000,
				UserID:         1,
			},
		},
		{
			name: "zero initial balance allowed",
			input: usecase.CreateAccountInput{
				Number:   "110-002",
				Password: "1234",
				UserID:   1,
			},
		},
		{
			name: "malformed number",
			input: usecase.CreateAccountInput{
				Number:   "abc",
				Password: "1234",
				UserID:   1,
			},
			wantErr: domain.ErrInvalidAccountNumber,
		},
		{
			name: "weak password",
			input: usecase.CreateAccountInput{
				Number:   "110-003",
				Password: "12",
				UserID:   1,
			},
			wantErr: domain.ErrPasswordTooWeak,
		},
		{
			name: "negative initial balance",
			input: usecase.CreateAccountInput{
				Number:         "110-004",
				Password:       "1234",
				InitialBalance: -1,
				UserID:         1,
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			uc := usecase.NewAccountUseCase(repo, mocks.NewMockPasswordHasher(), nil, nil)

			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if account.ID == 0 {
				t.Error("expected an assigned account id")
			}

			if account.Password == tt.input.Password {
				t.Error("password stored without hashing")
			}
		})
	}
}

func TestAccountUseCase_CreateAccount_DuplicateNumber(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockPasswordHasher(), nil, nil)

	input := usecase.CreateAccountInput{Number: "110-001", Password: "1234", UserID: 1}

	if _, err := uc.CreateAccount(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input.UserID = 2
	_, err := uc.CreateAccount(context.Background(), input)
	if !errors.Is(err, domain.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockPasswordHasher(), cache, nil)

	seeded := repo.Seed(&domain.Account{Number: "110-001", Balance: 1000, UserID: 1})

	t.Run("miss falls through to the store", func(t *testing.T) {
		account, err := uc.GetAccount(context.Background(), seeded.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.Number != "110-001" {
			t.Errorf("expected number 110-001, got %s", account.Number)
		}
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		// Make the repo fail; the cached copy must still answer.
		repo.FindByIDFunc = func(ctx context.Context, id int64) (*domain.Account, error) {
			return nil, domain.ErrStorage
		}
		defer func() { repo.FindByIDFunc = nil }()

		account, err := uc.GetAccount(context.Background(), seeded.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.Balance != 1000 {
			t.Errorf("expected balance 1000, got %d", account.Balance)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := uc.GetAccount(context.Background(), 9999)
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockPasswordHasher(), nil, nil)

	for _, number := range []string{"110-001", "110-002", "110-003"} {
		repo.Seed(&domain.Account{Number: number, UserID: 1})
	}
	repo.Seed(&domain.Account{Number: "220-001", UserID: 2})

	t.Run("pages are ordered by account id", func(t *testing.T) {
		accounts, total, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{
			UserID: 1,
			Page:   1,
			Size:   2,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}

		if len(accounts) != 2 || accounts[0].Number != "110-001" || accounts[1].Number != "110-002" {
			t.Errorf("unexpected first page: %+v", accounts)
		}
	})

	t.Run("second page", func(t *testing.T) {
		accounts, _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{
			UserID: 1,
			Page:   2,
			Size:   2,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(accounts) != 1 || accounts[0].Number != "110-003" {
			t.Errorf("unexpected second page: %+v", accounts)
		}
	})

	t.Run("invalid pagination", func(t *testing.T) {
		_, _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{UserID: 1, Page: 0, Size: 5})
		if !errors.Is(err, domain.ErrInvalidPage) {
			t.Errorf("expected ErrInvalidPage, got %v", err)
		}
	})
}
