package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JanTran/movie-api/internal/config"
)

type fakePool struct{}

func (fakePool) Acquire(context.Context) (*pgxpool.Conn, error) {
	return nil, errors.New("not implemented")
}

func (fakePool) Close() {}

func TestBuildDependencies(t *testing.T) {
	cfg := config.Config{
		TokenSecret: "0123456789abcdef0123456789abcdef",
		TokenTTL:    time.Hour,
	}

	deps, err := buildDependencies(fakePool{}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.Users == nil {
		t.Fatal("expected user repository to be configured")
	}
	if deps.Movies == nil {
		t.Fatal("expected movie repository to be configured")
	}
	if deps.Tokens == nil {
		t.Fatal("expected token issuer to be configured")
	}
	if deps.Guard == nil {
		t.Fatal("expected auth guard to be configured")
	}
}

func TestBuildDependenciesRejectsShortSecret(t *testing.T) {
	cfg := config.Config{
		TokenSecret: "too-short",
		TokenTTL:    time.Hour,
	}

	if _, err := buildDependencies(fakePool{}, cfg); err == nil {
		t.Fatal("expected an error for a short token secret")
	}
}
