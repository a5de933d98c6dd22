package galleria_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sagarc03/galleria"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenSigner(t *testing.T) {
	_, err := galleria.NewTokenSigner(nil)
	assert.Error(t, err)

	_, err = galleria.NewTokenSigner([]byte{})
	assert.Error(t, err)

	s, err := galleria.NewTokenSigner(testSecret)
	assert.NoError(t, err)
	assert.NotNil(t, s)
}

func TestTokenSigner_SignParse(t *testing.T) {
	signer, err := galleria.NewTokenSigner(testSecret)
	require.NoError(t, err)

	identity := strings.Repeat("ab", 32)

	signed, err := signer.Sign(identity)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		got, err := signer.Parse(signed)
		require.NoError(t, err)
		assert.Equal(t, identity, got)
	})

	t.Run("payload carries only the token", func(t *testing.T) {
		parts := strings.Split(signed, ".")
		require.Len(t, parts, 3)

		header, err := base64.RawURLEncoding.DecodeString(parts[0])
		require.NoError(t, err)
		assert.JSONEq(t, `{"alg":"HS256","typ":"JWT"}`, string(header))

		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(payload, &body))
		assert.Equal(t, map[string]any{"token": identity}, body)
	})
}

func TestTokenSigner_ParseRejects(t *testing.T) {
	signer, err := galleria.NewTokenSigner(testSecret)
	require.NoError(t, err)

	other, err := galleria.NewTokenSigner([]byte("another-secret-another-secret-xx"))
	require.NoError(t, err)

	foreign, err := other.Sign(strings.Repeat("cd", 32))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, galleria.Claims{Token: "abc"}).SignedString(testSecret)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, galleria.Claims{Token: "abc"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	emptyToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, galleria.Claims{}).SignedString(testSecret)
	require.NoError(t, err)

	valid, err := signer.Sign("abc")
	require.NoError(t, err)
	tampered := valid[:len(valid)-2] + "xx"

	tests := []struct {
		name   string
		signed string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"different secret", foreign},
		{"other algorithm", hs512},
		{"alg none", none},
		{"missing identity token", emptyToken},
		{"tampered signature", tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Parse(tt.signed)
			assert.ErrorIs(t, err, galleria.ErrInvalidToken)
		})
	}
}
