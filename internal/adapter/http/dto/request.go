package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	Number         string          `json:"number"`
	Password       string          `json:"password"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input. The initial balance moves from
// the wire's decimal representation to minor units.
func (r *CreateAccountRequest) ToUseCaseInput(userID int64) (usecase.CreateAccountInput, error) {
	balance, err := domain.MinorUnits(r.InitialBalance)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}

	return usecase.CreateAccountInput{
		Number:         r.Number,
		Password:       r.Password,
		InitialBalance: balance,
		UserID:         userID,
	}, nil
}

// DepositRequest represents a request to deposit into an account.
type DepositRequest struct {
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// WithdrawRequest represents a request to withdraw from an account.
type WithdrawRequest struct {
	AccountNumber string          `json:"account_number"`
	Password      string          `json:"password"`
	Amount        decimal.Decimal `json:"amount"`
}

// TransferRequest represents a request to move money between two accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"from_account_number"`
	Password          string          `json:"password"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"`
}
