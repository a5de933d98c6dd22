package galleria

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("not found")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when authentication fails
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken is returned when a signed token cannot be resolved to a user
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials is returned when a username/password pair does not match
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateKey is returned when a unique constraint is violated
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrTokenGenerationExhausted is returned when every identity token attempt collided
	ErrTokenGenerationExhausted = errors.New("token generation exhausted")
	// ErrPayloadTooLarge is returned when an upload exceeds the configured limit
	ErrPayloadTooLarge = errors.New("payload too large")
)

// Unique fields reported by DuplicateKeyError.
const (
	FieldUsername      = "username"
	FieldEmail         = "email"
	FieldIdentityToken = "identity_token"
	FieldImageURI      = "image_uri"
)

// DuplicateKeyError reports a unique constraint violation on a single field.
// It matches ErrDuplicateKey with errors.Is.
type DuplicateKeyError struct {
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return ErrDuplicateKey.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDuplicateKey.Error(), e.Field)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

// IsDuplicateField reports whether err is a DuplicateKeyError for field.
func IsDuplicateField(err error, field string) bool {
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		return false
	}
	return dup.Field == field
}

// ValidationError is rejected client input. Message is safe to show to the caller.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Message string
}

// InvalidInput returns a *ValidationError with a formatted message.
func InvalidInput(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
