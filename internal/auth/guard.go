package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/JanTran/movie-api/internal/models"
	"github.com/JanTran/movie-api/internal/repositories"
)

// ErrStaleIdentity indicates a token that verified correctly but names a user
// that no longer exists.
var ErrStaleIdentity = errors.New("token identity no longer exists")

// TokenVerifier resolves a raw token to the username it asserts.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// UserResolver looks up the account a verified token refers to.
type UserResolver interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// Guard decides whether a request reaches an authenticated state. A request
// passes only when its token verifies and the embedded username still resolves
// to a stored account; every other outcome rejects the request before any
// downstream side effect.
type Guard struct {
	tokens TokenVerifier
	users  UserResolver
}

// NewGuard constructs a Guard over the provided verifier and user store.
func NewGuard(tokens TokenVerifier, users UserResolver) *Guard {
	if tokens == nil || users == nil {
		panic("auth: guard requires a token verifier and a user resolver")
	}
	return &Guard{tokens: tokens, users: users}
}

// Authenticate validates the raw token and resolves it to the user it names.
func (g *Guard) Authenticate(ctx context.Context, raw string) (models.User, error) {
	username, err := g.tokens.Verify(raw)
	if err != nil {
		return models.User{}, err
	}

	user, err := g.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.User{}, ErrStaleIdentity
		}
		return models.User{}, fmt.Errorf("resolve token identity: %w", err)
	}

	return user, nil
}
