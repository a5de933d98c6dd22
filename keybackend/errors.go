package keybackend

import "errors"

var (
	// ErrSecretNotConfigured is returned when neither an inline secret nor a secret file is set.
	ErrSecretNotConfigured = errors.New("signing secret not configured")
	// ErrSecretTooShort is returned when the secret is shorter than MinSecretLength bytes.
	ErrSecretTooShort = errors.New("signing secret too short")
)
