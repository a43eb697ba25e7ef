package auth

import (
	"context"

	"github.com/JanTran/movie-api/internal/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity stores the authenticated user on the context.
func WithIdentity(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// IdentityFromContext retrieves the authenticated user placed on the context
// by the auth middleware. The boolean reports whether a request actually
// passed authentication.
func IdentityFromContext(ctx context.Context) (models.User, bool) {
	if ctx == nil {
		return models.User{}, false
	}
	user, ok := ctx.Value(identityKey).(models.User)
	return user, ok
}
