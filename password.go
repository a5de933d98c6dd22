package galleria

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for every stored password.
const PasswordCost = 10

// HashPassword returns the bcrypt hash of plain.
//
// Returns ErrInvalidInput for an empty password or one longer than bcrypt's
// 72 byte limit. Any other failure wraps ErrInternal.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("hash password: %w", InvalidInput("password cannot be empty"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("hash password: %w", InvalidInput("password too long"))
		}
		return "", fmt.Errorf("hash password: %w: %w", ErrInternal, err)
	}

	return string(hash), nil
}

// VerifyPassword compares plain against a stored bcrypt hash.
// A mismatch is ErrInvalidCredentials; a malformed hash wraps ErrInternal.
func VerifyPassword(plain, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("verify password: %w", ErrInvalidCredentials)
	}

	return fmt.Errorf("verify password: %w: %w", ErrInternal, err)
}
