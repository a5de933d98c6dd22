package galleria

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

const (
	// IdentityTokenBytes is the number of random bytes behind an identity token.
	IdentityTokenBytes = 32
	// DefaultMaxTokenAttempts bounds identity token generation on collisions.
	DefaultMaxTokenAttempts = 4
)

// dummyHash is compared against when a login names an unknown user.
var dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z7KpQ9GEu0eDe1sJUXfGYbyS"

// CredentialConfig holds configuration options for CredentialStore.
type CredentialConfig struct {
	Secret           []byte    // HS256 signing secret (required)
	Random           io.Reader // Source of identity token bytes (default: crypto/rand)
	MaxTokenAttempts int       // Attempts before ErrTokenGenerationExhausted (default: 4)
}

// CredentialStore issues and resolves signed tokens for users.
type CredentialStore struct {
	users       UserRepo
	signer      *TokenSigner
	random      io.Reader
	maxAttempts int
	validate    *validator.Validate
}

func NewCredentialStore(users UserRepo, cfg CredentialConfig) (*CredentialStore, error) {
	if users == nil {
		return nil, errors.New("new credential store: user repo cannot be nil")
	}

	signer, err := NewTokenSigner(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("new credential store: %w", err)
	}

	random := cfg.Random
	if random == nil {
		random = rand.Reader
	}

	maxAttempts := cfg.MaxTokenAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxTokenAttempts
	}

	return &CredentialStore{
		users:       users,
		signer:      signer,
		random:      random,
		maxAttempts: maxAttempts,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Signup validates req, creates the user and returns a freshly signed token.
//
// Error types returned:
//   - ErrInvalidInput: Request fails validation
//   - ErrDuplicateKey (*DuplicateKeyError): Username or email already taken
//   - ErrTokenGenerationExhausted: Every identity token attempt collided
func (s *CredentialStore) Signup(ctx context.Context, req SignupRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	if err := s.validate.Struct(req); err != nil {
		return "", fmt.Errorf("signup: %w", InvalidInput("%s", validationMessage(err)))
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	user, err := s.users.Create(ctx, User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	signed, err := s.IssueSignedToken(ctx, user)
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	return signed, nil
}

// Login checks a username/password pair and returns a freshly signed token.
// An unknown username and a wrong password both yield ErrInvalidCredentials.
func (s *CredentialStore) Login(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if username == "" || password == "" {
		return "", fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	user, err := s.users.FindOneByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = VerifyPassword(password, dummyHash)
			return "", fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if err := VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return "", fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		return "", fmt.Errorf("login: %w", err)
	}

	signed, err := s.IssueSignedToken(ctx, user)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	return signed, nil
}

// IssueIdentityToken generates a new identity token for user and saves it,
// replacing the previous one. Collisions on the identity token index are
// retried up to the configured attempt count; any other save error is
// returned immediately.
//
// Concurrent calls for the same user each overwrite the token. The last
// write wins and tokens signed over the losing value stop resolving.
func (s *CredentialStore) IssueIdentityToken(ctx context.Context, user User) (string, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("issue identity token: %w", err)
		}

		token, err := s.newIdentityToken()
		if err != nil {
			return "", fmt.Errorf("issue identity token: %w", err)
		}

		user.IdentityToken = token
		err = s.users.Save(ctx, user)
		if err == nil {
			return token, nil
		}

		if !IsDuplicateField(err, FieldIdentityToken) {
			return "", fmt.Errorf("issue identity token: %w", err)
		}

		slog.Warn("identity token collision", "user_id", user.ID, "attempt", attempt)
	}

	return "", fmt.Errorf("issue identity token: %w after %d attempts", ErrTokenGenerationExhausted, s.maxAttempts)
}

// IssueSignedToken issues a new identity token for user and signs it.
func (s *CredentialStore) IssueSignedToken(ctx context.Context, user User) (string, error) {
	token, err := s.IssueIdentityToken(ctx, user)
	if err != nil {
		return "", err
	}

	signed, err := s.signer.Sign(token)
	if err != nil {
		return "", fmt.Errorf("issue signed token: %w", err)
	}

	return signed, nil
}

// ResolveSignedToken verifies signed and returns the user holding the
// identity token it carries.
//
// Every failure wraps ErrUnauthorized. Token problems (bad signature, bad
// format, unknown identity token) additionally wrap ErrInvalidToken; storage
// failures wrap the underlying error instead so callers can log them apart.
func (s *CredentialStore) ResolveSignedToken(ctx context.Context, signed string) (User, error) {
	identity, err := s.signer.Parse(signed)
	if err != nil {
		return User{}, fmt.Errorf("resolve signed token: %w: %w", ErrUnauthorized, err)
	}

	user, err := s.users.FindOneByIdentityToken(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, fmt.Errorf("resolve signed token: %w: %w: unknown identity token", ErrUnauthorized, ErrInvalidToken)
		}
		return User{}, fmt.Errorf("resolve signed token: %w: %w", ErrUnauthorized, err)
	}

	return user, nil
}

func (s *CredentialStore) newIdentityToken() (string, error) {
	buf := make([]byte, IdentityTokenBytes)
	if _, err := io.ReadFull(s.random, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w: %w", ErrInternal, err)
	}
	return hex.EncodeToString(buf), nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldName(fe))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fieldName(fe))
	case "min", "max":
		return fmt.Sprintf("%s must be between 1 and 64 characters", fieldName(fe))
	default:
		return fmt.Sprintf("%s is invalid", fieldName(fe))
	}
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		return "username"
	case "Email":
		return "email"
	case "Password":
		return "password"
	default:
		return fe.Field()
	}
}
