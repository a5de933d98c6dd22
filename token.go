package galleria

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed token payload. Only Token is ever set, so the
// encoded payload is {"token": "<identity token>"}.
type Claims struct {
	Token string `json:"token"`
	jwt.RegisteredClaims
}

// TokenSigner signs and verifies HS256 tokens carrying an identity token.
type TokenSigner struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenSigner(secret []byte) (*TokenSigner, error) {
	if len(secret) == 0 {
		return nil, errors.New("new token signer: secret cannot be empty")
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &TokenSigner{
		secret: key,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Sign returns a compact HS256 JWS whose payload carries identityToken.
func (s *TokenSigner) Sign(identityToken string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Token: identityToken})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w: %w", ErrInternal, err)
	}

	return signed, nil
}

// Parse verifies signed and returns the identity token it carries.
// Every failure wraps ErrInvalidToken.
func (s *TokenSigner) Parse(signed string) (string, error) {
	if signed == "" {
		return "", fmt.Errorf("parse token: %w: empty token", ErrInvalidToken)
	}

	var claims Claims
	_, err := s.parser.ParseWithClaims(signed, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w: %w", ErrInvalidToken, err)
	}

	if claims.Token == "" {
		return "", fmt.Errorf("parse token: %w: missing identity token", ErrInvalidToken)
	}

	return claims.Token, nil
}
