package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JanTran/movie-api/internal/logging"
	"github.com/JanTran/movie-api/internal/models"
	"github.com/JanTran/movie-api/internal/repositories"
)

// MovieHandler implements the read-only catalog endpoints.
type MovieHandler struct {
	Movies MovieStore
}

// List handles GET /movies requests.
func (h MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list movies", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "unexpected error")
		return
	}

	resp := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		resp = append(resp, newMovieResponse(movie))
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

// ByTitle handles GET /movies/{title} requests.
func (h MovieHandler) ByTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	title := r.PathValue("title")

	movie, err := h.Movies.FindByTitle(ctx, title)
	if err != nil {
		h.respondStoreError(w, r, err, title)
		return
	}

	respondJSON(ctx, w, http.StatusOK, newMovieResponse(movie))
}

// Genre handles GET /movies/genres/{name} requests.
func (h MovieHandler) Genre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	genre, err := h.Movies.FindGenre(ctx, name)
	if err != nil {
		h.respondStoreError(w, r, err, name)
		return
	}

	respondJSON(ctx, w, http.StatusOK, genreResponse{Name: genre.Name, Description: genre.Description})
}

// Director handles GET /movies/directors/{name} requests.
func (h MovieHandler) Director(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	director, err := h.Movies.FindDirector(ctx, name)
	if err != nil {
		h.respondStoreError(w, r, err, name)
		return
	}

	respondJSON(ctx, w, http.StatusOK, newDirectorResponse(director))
}

func (h MovieHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, subject string) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if errors.Is(err, repositories.ErrNotFound) {
		logger.Warn("catalog entry not found", "subject", subject)
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("%s was not found", subject))
		return
	}

	logger.Error("movie store failure", "error", err, "subject", subject)
	respondError(ctx, w, http.StatusInternalServerError, "unexpected error")
}

type genreResponse struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

type directorResponse struct {
	Name  string `json:"Name"`
	Bio   string `json:"Bio"`
	Birth string `json:"Birth,omitempty"`
	Death string `json:"Death,omitempty"`
}

type movieResponse struct {
	ID          string           `json:"ID"`
	Title       string           `json:"Title"`
	Description string           `json:"Description"`
	Genre       genreResponse    `json:"Genre"`
	Director    directorResponse `json:"Director"`
	ImagePath   string           `json:"ImagePath"`
	PosterURL   string           `json:"PosterURL,omitempty"`
	Featured    bool             `json:"Featured"`
}

func newMovieResponse(movie models.Movie) movieResponse {
	return movieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       genreResponse{Name: movie.Genre.Name, Description: movie.Genre.Description},
		Director:    newDirectorResponse(movie.Director),
		ImagePath:   movie.ImagePath,
		PosterURL:   movie.PosterURL,
		Featured:    movie.Featured,
	}
}

func newDirectorResponse(director models.Director) directorResponse {
	resp := directorResponse{Name: director.Name, Bio: director.Bio}
	if director.Birth != nil {
		resp.Birth = director.Birth.Format("2006-01-02")
	}
	if director.Death != nil {
		resp.Death = director.Death.Format("2006-01-02")
	}
	return resp
}
