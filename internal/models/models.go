package models

import "time"

// User represents a registered myFlix account. PasswordHash holds the bcrypt
// hash of the password; the plaintext is never persisted.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	Birthday       *time.Time
	FavoriteMovies []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Genre describes a movie genre embedded in a catalog entry.
type Genre struct {
	Name        string
	Description string
}

// Director describes the director embedded in a catalog entry.
type Director struct {
	Name  string
	Bio   string
	Birth *time.Time
	Death *time.Time
}

// Movie is a catalog entry. ImagePath references the upstream poster image;
// PosterURL points at the copy persisted to object storage once ingested.
type Movie struct {
	ID           string
	Title        string
	Description  string
	Genre        Genre
	Director     Director
	ImagePath    string
	PosterURL    string
	PosterStatus string
	Featured     bool
	CreatedAt    time.Time
}

const (
	PosterStatusPending = "pending"
	PosterStatusReady   = "ready"
	PosterStatusFailed  = "failed"
)

// AccessToken is the signed credential returned by a successful login.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
