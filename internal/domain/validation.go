package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// Validation errors
var (
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrPasswordTooWeak      = errors.New("password does not meet requirements")
	ErrInvalidPage          = errors.New("page and size must be positive")
)

// Validation constants
const (
	MinPasswordLength = 4
	MaxPasswordLength = 128
	MaxPageSize       = 100
	DefaultPageSize   = 20
)

// Account numbers look like "110-001": digit groups separated by dashes.
var accountNumberRegex = regexp.MustCompile(`^\d{2,6}(-\d{2,6})+$`)

// ValidateAccountNumber validates the caller-assigned account number format.
func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountNumber, number)
	}
	return nil
}

// ValidatePassword validates the account password/PIN length bounds. The
// hashing policy itself is delegated to the credential verifier.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}
	return nil
}

// ValidatePage validates 1-based pagination parameters and returns the
// resulting limit and offset.
func ValidatePage(page, size int) (limit, offset int, err error) {
	if page <= 0 || size <= 0 {
		return 0, 0, ErrInvalidPage
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return size, (page - 1) * size, nil
}
