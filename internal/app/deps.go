package app

import (
	"github.com/JanTran/movie-api/internal/auth"
	"github.com/JanTran/movie-api/internal/config"
	"github.com/JanTran/movie-api/internal/db"
	"github.com/JanTran/movie-api/internal/handlers"
	"github.com/JanTran/movie-api/internal/repositories"
)

// buildDependencies wires together concrete implementations used by the HTTP
// handlers.
func buildDependencies(pool db.Pool, cfg config.Config) (handlers.Dependencies, error) {
	users := repositories.NewPostgresUserRepository(pool)
	movies := repositories.NewPostgresMovieRepository(pool)

	issuer, err := auth.NewIssuer([]byte(cfg.TokenSecret), cfg.TokenTTL)
	if err != nil {
		return handlers.Dependencies{}, err
	}

	return handlers.Dependencies{
		Users:  users,
		Movies: movies,
		Tokens: issuer,
		Guard:  auth.NewGuard(issuer, users),
	}, nil
}
