package domain

import (
	"time"
)

// Account represents a balance-holding ledger record owned by exactly one
// user. Balance is kept in currency minor units and must never go negative.
// An Account value is loaded from the store, mutated in memory, and written
// back inside the same unit of work; it has no lifetime beyond one operation.
type Account struct {
	ID        int64
	Number    string
	Password  string // bcrypt hash, compared via a PasswordVerifier
	Balance   int64
	UserID    int64
	CreatedAt time.Time
}

// CheckOwner fails with ErrUnauthorized when the account is not owned by
// callerUserID.
func (a *Account) CheckOwner(callerUserID int64) error {
	if a.UserID != callerUserID {
		return ErrUnauthorized
	}
	return nil
}

// CheckBalance fails with ErrInsufficientFunds when amount exceeds the
// current balance.
func (a *Account) CheckBalance(amount int64) error {
	if amount > a.Balance {
		return ErrInsufficientFunds
	}
	return nil
}

// Withdraw decreases the in-memory balance by amount. The amount and balance
// preconditions are re-validated even though callers check them first.
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := a.CheckBalance(amount); err != nil {
		return err
	}
	a.Balance -= amount
	return nil
}

// Deposit increases the in-memory balance by amount.
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.Balance += amount
	return nil
}
