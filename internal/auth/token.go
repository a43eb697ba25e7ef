package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JanTran/movie-api/internal/models"
)

const (
	tokenIssuer    = "myflix-api"
	minSecretBytes = 32
)

var (
	// ErrInvalidToken indicates the token is malformed or its signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the token was valid but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the JWT payload issued to authenticated users. The username
// travels in the registered subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer creates and verifies signed, time-bound access tokens. Tokens are
// stateless: nothing is recorded server-side and there is no revocation
// before expiry.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer constructs an Issuer signing with the provided secret. The secret
// must be at least 32 bytes to be usable as an HS256 key.
func NewIssuer(secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("auth: signing secret must be at least %d bytes", minSecretBytes)
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	return &Issuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token binding the username to an expiry ttl from now.
func (i *Issuer) Issue(username string) (models.AccessToken, error) {
	if username == "" {
		return models.AccessToken{}, errors.New("auth: username must be provided")
	}

	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("sign token: %w", err)
	}

	return models.AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks the signature and expiry of a raw token and returns the
// embedded username. Expired tokens map to ErrTokenExpired; every other
// failure maps to ErrInvalidToken.
func (i *Issuer) Verify(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
