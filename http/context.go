package http

import (
	"context"

	"github.com/sagarc03/galleria"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user galleria.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the user attached by BearerAuth.
func UserFromContext(ctx context.Context) (galleria.User, bool) {
	user, ok := ctx.Value(userContextKey).(galleria.User)
	return user, ok
}
