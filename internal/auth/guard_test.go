package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/JanTran/movie-api/internal/models"
	"github.com/JanTran/movie-api/internal/repositories"
)

type stubVerifier struct {
	username string
	err      error
}

func (s stubVerifier) Verify(string) (string, error) {
	return s.username, s.err
}

type stubResolver struct {
	user models.User
	err  error
}

func (s stubResolver) FindByUsername(context.Context, string) (models.User, error) {
	return s.user, s.err
}

func TestGuardAuthenticate(t *testing.T) {
	guard := NewGuard(
		stubVerifier{username: "alice1"},
		stubResolver{user: models.User{ID: "u-1", Username: "alice1"}},
	)

	user, err := guard.Authenticate(context.Background(), "raw-token")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "alice1" {
		t.Fatalf("expected resolved identity alice1, got %q", user.Username)
	}
}

func TestGuardRejectsInvalidToken(t *testing.T) {
	guard := NewGuard(stubVerifier{err: ErrInvalidToken}, stubResolver{})

	if _, err := guard.Authenticate(context.Background(), "raw"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGuardRejectsStaleIdentity(t *testing.T) {
	guard := NewGuard(
		stubVerifier{username: "ghost"},
		stubResolver{err: repositories.ErrNotFound},
	)

	if _, err := guard.Authenticate(context.Background(), "raw"); !errors.Is(err, ErrStaleIdentity) {
		t.Fatalf("expected ErrStaleIdentity, got %v", err)
	}
}

func TestGuardPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	guard := NewGuard(stubVerifier{username: "alice1"}, stubResolver{err: storeErr})

	if _, err := guard.Authenticate(context.Background(), "raw"); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
