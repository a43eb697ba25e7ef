package repositories

import (
	"context"
	"time"

	"github.com/JanTran/movie-api/internal/models"
)

// UserUpdate carries the profile fields to change. Nil fields are left
// untouched so the whole update can be expressed as one atomic statement.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Birthday     *time.Time
}

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Update(ctx context.Context, username string, update UserUpdate) (models.User, error)
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (models.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (models.User, error)
}
