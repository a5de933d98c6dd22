package galleria_test

import (
	"strings"
	"testing"

	"github.com/sagarc03/galleria"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	passwords := []string{"secret1", "pässwörd", "with:colon", " spaces ", strings.Repeat("x", 72)}

	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			t.Parallel()

			hash, err := galleria.HashPassword(p)
			require.NoError(t, err)

			assert.NotEqual(t, p, hash)
			assert.NotContains(t, hash, p)
			assert.NoError(t, galleria.VerifyPassword(p, hash))

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, galleria.PasswordCost, cost)
		})
	}

	t.Run("salted", func(t *testing.T) {
		t.Parallel()

		a, err := galleria.HashPassword("secret1")
		require.NoError(t, err)
		b, err := galleria.HashPassword("secret1")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("empty password", func(t *testing.T) {
		t.Parallel()

		_, err := galleria.HashPassword("")
		assert.ErrorIs(t, err, galleria.ErrInvalidInput)
	})

	t.Run("too long password", func(t *testing.T) {
		t.Parallel()

		_, err := galleria.HashPassword(strings.Repeat("x", 73))
		assert.ErrorIs(t, err, galleria.ErrInvalidInput)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := galleria.HashPassword("secret1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
	}{
		{name: "match", plain: "secret1", hash: hash},
		{name: "wrong password", plain: "secret2", hash: hash, wantErr: galleria.ErrInvalidCredentials},
		{name: "empty password", plain: "", hash: hash, wantErr: galleria.ErrInvalidCredentials},
		{name: "prefix of password", plain: "secret", hash: hash, wantErr: galleria.ErrInvalidCredentials},
		{name: "malformed hash", plain: "secret1", hash: "not-a-hash", wantErr: galleria.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := galleria.VerifyPassword(tt.plain, tt.hash)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
