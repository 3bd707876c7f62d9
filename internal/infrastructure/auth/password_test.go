package auth_test

import (
	"errors"
	"testing"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/infrastructure/auth"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := auth.NewPasswordHasher()

	hash, err := hasher.Hash("1234")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "1234" {
		t.Fatal("expected hash to differ from plaintext")
	}

	if err := hasher.Verify(hash, "1234"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
}

func TestPasswordHasherWrongPassword(t *testing.T) {
	t.Parallel()

	hasher := auth.NewPasswordHasher()

	hash, err := hasher.Hash("1234")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := hasher.Verify(hash, "4321"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("Verify() error = %v, want ErrInvalidCredential", err)
	}
}

func TestPasswordHasherUniqueSalts(t *testing.T) {
	t.Parallel()

	hasher := auth.NewPasswordHasher()

	first, err := hasher.Hash("1234")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("1234")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Fatal("expected salted hashes to differ")
	}
}
