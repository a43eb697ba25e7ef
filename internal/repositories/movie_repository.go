package repositories

import (
	"context"

	"github.com/JanTran/movie-api/internal/models"
)

// MovieRepository defines the data access contract for the movie catalog.
type MovieRepository interface {
	List(ctx context.Context) ([]models.Movie, error)
	FindByTitle(ctx context.Context, title string) (models.Movie, error)
	FindGenre(ctx context.Context, name string) (models.Genre, error)
	FindDirector(ctx context.Context, name string) (models.Director, error)
}

// PosterUpdater persists poster ingestion status updates for catalog entries.
type PosterUpdater interface {
	MarkPosterReady(ctx context.Context, movieID, location string) error
	MarkPosterFailed(ctx context.Context, movieID string) error
}
