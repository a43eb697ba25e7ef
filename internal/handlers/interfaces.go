package handlers

import (
	"context"

	"github.com/JanTran/movie-api/internal/models"
	"github.com/JanTran/movie-api/internal/repositories"
)

// UserStore captures the persistence operations required by the user-facing
// handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Update(ctx context.Context, username string, update repositories.UserUpdate) (models.User, error)
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (models.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (models.User, error)
}

// MovieStore captures read access to the movie catalog.
type MovieStore interface {
	List(ctx context.Context) ([]models.Movie, error)
	FindByTitle(ctx context.Context, title string) (models.Movie, error)
	FindGenre(ctx context.Context, name string) (models.Genre, error)
	FindDirector(ctx context.Context, name string) (models.Director, error)
}

// TokenIssuer exchanges a verified username for a signed access token.
type TokenIssuer interface {
	Issue(username string) (models.AccessToken, error)
}
