package http

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sagarc03/galleria"
)

// TokenResolver resolves a signed bearer token to its user.
type TokenResolver interface {
	ResolveSignedToken(ctx context.Context, signed string) (galleria.User, error)
}

// BearerAuth creates middleware that requires an `Authorization: Bearer <token>`
// header and attaches the resolved user to the request context.
//
// A missing header fails with "requires auth header" before any lookup.
// A different scheme or an empty token fails with "requires token".
// Every resolution failure is reported to the caller as 401 unauthorized.
// Failures that are not ordinary bad tokens are logged at error level.
func BearerAuth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				HandleError(w, ErrRequiresAuthHeader)
				return
			}

			token, ok := cutScheme(header, "Bearer")
			if !ok || token == "" {
				HandleError(w, ErrRequiresToken)
				return
			}

			user, err := resolver.ResolveSignedToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, galleria.ErrInvalidToken) {
					slog.Debug("bearer token rejected", "error", err)
				} else {
					slog.Error("bearer token resolution failed", "error", err)
				}
				WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// ParseBasicAuth extracts the username and password from an
// `Authorization: Basic base64(username:password)` header value.
// The credentials are split on the first colon, so passwords may contain colons.
func ParseBasicAuth(header string) (username, password string, err error) {
	if header == "" {
		return "", "", ErrRequiresBasicAuth
	}

	encoded, ok := cutScheme(header, "Basic")
	if !ok || encoded == "" {
		return "", "", ErrRequiresBasicAuth
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", ErrInvalidBasicAuth
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	if !ok || username == "" || password == "" {
		return "", "", ErrInvalidBasicAuth
	}

	return username, password, nil
}

// cutScheme strips a case-insensitive auth scheme and the following space.
func cutScheme(header, scheme string) (string, bool) {
	if len(header) < len(scheme)+1 || !strings.EqualFold(header[:len(scheme)], scheme) || header[len(scheme)] != ' ' {
		return "", false
	}
	return strings.TrimSpace(header[len(scheme)+1:]), true
}

// RequestLogger logs one line per request at a level chosen by status class.
// It expects chi's RequestID middleware to run first.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		slog.Log(r.Context(), level, "request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote_ip", r.RemoteAddr,
		)
	})
}
