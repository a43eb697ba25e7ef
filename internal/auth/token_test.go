package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestIssuerRoundTrip(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue("alice1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.Token == "" {
		t.Fatal("expected a signed token")
	}

	wantExpiry := time.Now().UTC().Add(time.Hour)
	if diff := token.ExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("unexpected expiry %v", token.ExpiresAt)
	}

	username, err := issuer.Verify(token.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if username != "alice1" {
		t.Fatalf("expected alice1, got %q", username)
	}
}

func TestIssuerRejectsShortSecret(t *testing.T) {
	if _, err := NewIssuer([]byte("too-short"), time.Hour); err == nil {
		t.Fatal("expected error for short secret")
	}
	if _, err := NewIssuer(testSecret, 0); err == nil {
		t.Fatal("expected error for non-positive ttl")
	}
}

func TestIssuerIssueValidation(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if _, err := issuer.Issue(""); err == nil {
		t.Fatal("expected error for empty username")
	}
}

func TestVerifyExpiry(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue("alice1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Just before expiry the token still verifies.
	issuer.now = func() time.Time { return token.ExpiresAt.Add(-time.Second) }
	if _, err := issuer.Verify(token.Token); err != nil {
		t.Fatalf("expected token valid before expiry, got %v", err)
	}

	issuer.now = func() time.Time { return token.ExpiresAt.Add(time.Second) }
	if _, err := issuer.Verify(token.Token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired after expiry, got %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue("alice1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := token.Token[:len(token.Token)-2] + "xx"
	if _, err := issuer.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	if _, err := issuer.Verify(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}

	if _, err := issuer.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage token, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	other, err := NewIssuer([]byte(strings.Repeat("z", 32)), time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := other.Issue("alice1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(token.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}
