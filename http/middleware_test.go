package http_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
	galleriahttp "github.com/sagarc03/galleria/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

type resolverFunc func(ctx context.Context, signed string) (galleria.User, error)

func (f resolverFunc) ResolveSignedToken(ctx context.Context, signed string) (galleria.User, error) {
	return f(ctx, signed)
}

func TestBearerAuth_AttachesUser(t *testing.T) {
	user := galleria.User{ID: uuid.New(), Username: "alice"}
	resolver := new(MockAuth)
	resolver.On("ResolveSignedToken", mock.Anything, "tok").Return(user, nil).Once()

	var got galleria.User
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		got, ok = galleriahttp.UserFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()

	galleriahttp.BearerAuth(resolver)(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user, got)
	resolver.AssertExpectations(t)
}

func TestBearerAuth_SchemeIsCaseInsensitive(t *testing.T) {
	resolver := new(MockAuth)
	resolver.On("ResolveSignedToken", mock.Anything, "tok").Return(galleria.User{}, nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, scheme := range []string{"bearer", "BEARER", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", scheme+" tok")
		rec := httptest.NewRecorder()

		galleriahttp.BearerAuth(resolver)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, scheme)
	}
}

func TestBearerAuth_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantMessage string
	}{
		{"missing header", "", "requires auth header"},
		{"basic scheme", "Basic " + b64("a:b"), "requires token"},
		{"scheme only", "Bearer", "requires token"},
		{"empty token", "Bearer    ", "requires token"},
		{"token without scheme", "abc.def.ghi", "requires token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockAuth)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			galleriahttp.BearerAuth(resolver)(handler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "unauthorized", body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
			resolver.AssertNotCalled(t, "ResolveSignedToken", mock.Anything, mock.Anything)
		})
	}
}

func TestBearerAuth_ResolveFailuresAreUniform(t *testing.T) {
	failures := map[string]error{
		"bad signature": fmt.Errorf("resolve: %w: %w", galleria.ErrUnauthorized, galleria.ErrInvalidToken),
		"unknown token": fmt.Errorf("resolve: %w: %w: %w", galleria.ErrUnauthorized, galleria.ErrInvalidToken, galleria.ErrNotFound),
		"store failure": fmt.Errorf("resolve: %w: %w", galleria.ErrUnauthorized, fmt.Errorf("connection reset")),
	}

	var bodies []string
	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			resolver := resolverFunc(func(context.Context, string) (galleria.User, error) {
				return galleria.User{}, failure
			})

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer tok")
			rec := httptest.NewRecorder()

			galleriahttp.BearerAuth(resolver)(handler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	require.Len(t, bodies, len(failures))
	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b)
	}
}

func TestParseBasicAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		wantUser string
		wantPass string
		wantErr  error
	}{
		{"valid", "Basic " + b64("alice:secret"), "alice", "secret", nil},
		{"lowercase scheme", "basic " + b64("alice:secret"), "alice", "secret", nil},
		{"colon in password", "Basic " + b64("alice:a:b:c"), "alice", "a:b:c", nil},
		{"empty header", "", "", "", galleriahttp.ErrRequiresBasicAuth},
		{"bearer", "Bearer tok", "", "", galleriahttp.ErrRequiresBasicAuth},
		{"scheme only", "Basic ", "", "", galleriahttp.ErrRequiresBasicAuth},
		{"not base64", "Basic ***", "", "", galleriahttp.ErrInvalidBasicAuth},
		{"no colon", "Basic " + b64("alice"), "", "", galleriahttp.ErrInvalidBasicAuth},
		{"empty username", "Basic " + b64(":secret"), "", "", galleriahttp.ErrInvalidBasicAuth},
		{"empty password", "Basic " + b64("alice:"), "", "", galleriahttp.ErrInvalidBasicAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, pass, err := galleriahttp.ParseBasicAuth(tt.header)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user)
			assert.Equal(t, tt.wantPass, pass)
		})
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
	rec := httptest.NewRecorder()

	galleriahttp.RequestLogger(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
