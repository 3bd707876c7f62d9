package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrUnauthorized      = errors.New("caller does not own this account")
	ErrInvalidCredential = errors.New("account password does not match")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Operation errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidOperation = errors.New("invalid operation")

	// Concurrency errors
	ErrConcurrentModification = errors.New("account was modified concurrently")
	ErrOperationTimeout       = errors.New("timed out waiting for account lock")

	// Persistence errors
	ErrOperationFailed = errors.New("operation affected an unexpected number of rows")
	ErrStorage         = errors.New("storage failure")
)
