package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tenco/bankcore/internal/domain"
)

// PasswordHasher implements usecase.PasswordHasher with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the default bcrypt cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash hashes a plaintext account password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares a stored hash against a candidate password. A mismatch
// surfaces as domain.ErrInvalidCredential.
func (h *PasswordHasher) Verify(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.ErrInvalidCredential
	}
	return nil
}
