// Package keybackend loads the server's token signing secret.
package keybackend

import (
	"fmt"
)

// MinSecretLength is the minimum accepted secret size in bytes.
const MinSecretLength = 32

// SecretConfig holds configuration for loading the signing secret.
type SecretConfig struct {
	Inline string `mapstructure:"inline"` // Secret given directly in config
	File   string `mapstructure:"file"`   // Path to a file holding the secret
}

// LoadSigningSecret resolves the signing secret from cfg.
// The file takes precedence over the inline value when both are set.
// A missing or empty secret returns ErrSecretNotConfigured and a secret
// shorter than MinSecretLength returns ErrSecretTooShort.
func LoadSigningSecret(cfg SecretConfig) ([]byte, error) {
	var secret []byte

	switch {
	case cfg.File != "":
		s, err := LoadSecretFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		secret = s
	case cfg.Inline != "":
		secret = []byte(cfg.Inline)
	}

	if len(secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrSecretTooShort, len(secret), MinSecretLength)
	}

	return secret, nil
}
