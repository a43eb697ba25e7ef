package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JanTran/movie-api/internal/auth"
	"github.com/JanTran/movie-api/internal/logging"
	"github.com/JanTran/movie-api/internal/models"
)

// Authenticator resolves a raw bearer token to the user it asserts.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (models.User, error)
}

// RequireAuth gates a handler behind token authentication. The wrapped handler
// runs only for requests whose bearer token verifies and still resolves to an
// existing user; the resolved identity is placed on the request context.
//
// Every rejection uses the same status and body regardless of whether the
// token was malformed, expired, or named a deleted user, so callers cannot
// probe which usernames exist.
func RequireAuth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := logging.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				logger.Warn("request missing bearer token")
				rejectUnauthorized(w)
				return
			}

			user, err := authenticator.Authenticate(ctx, raw)
			if err != nil {
				logger.Warn("token authentication failed", "error", err)
				rejectUnauthorized(w)
				return
			}

			ctx = auth.WithIdentity(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or expired token"})
}
