package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JanTran/movie-api/internal/models"
	"github.com/JanTran/movie-api/internal/repositories"
)

type inMemoryMovieStore struct {
	movies []models.Movie
}

func (s *inMemoryMovieStore) List(context.Context) ([]models.Movie, error) {
	return s.movies, nil
}

func (s *inMemoryMovieStore) FindByTitle(_ context.Context, title string) (models.Movie, error) {
	for _, movie := range s.movies {
		if movie.Title == title {
			return movie, nil
		}
	}
	return models.Movie{}, repositories.ErrNotFound
}

func (s *inMemoryMovieStore) FindGenre(_ context.Context, name string) (models.Genre, error) {
	for _, movie := range s.movies {
		if movie.Genre.Name == name {
			return movie.Genre, nil
		}
	}
	return models.Genre{}, repositories.ErrNotFound
}

func (s *inMemoryMovieStore) FindDirector(_ context.Context, name string) (models.Director, error) {
	for _, movie := range s.movies {
		if movie.Director.Name == name {
			return movie.Director, nil
		}
	}
	return models.Director{}, repositories.ErrNotFound
}

func testCatalog() *inMemoryMovieStore {
	birth := time.Date(1937, 11, 30, 0, 0, 0, 0, time.UTC)
	return &inMemoryMovieStore{movies: []models.Movie{
		{
			ID:          "m-1",
			Title:       "Alien",
			Description: "A commercial crew encounters a lethal lifeform.",
			Genre:       models.Genre{Name: "Science Fiction", Description: "Speculative stories."},
			Director:    models.Director{Name: "Ridley Scott", Bio: "English filmmaker.", Birth: &birth},
			ImagePath:   "https://example.com/alien.jpg",
			Featured:    true,
		},
	}}
}

func TestMovieHandlerList(t *testing.T) {
	handler := MovieHandler{Movies: testCatalog()}

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rec.Code)
	}

	var resp []movieResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Title != "Alien" {
		t.Fatalf("unexpected catalog %+v", resp)
	}
}

func TestMovieHandlerByTitle(t *testing.T) {
	handler := MovieHandler{Movies: testCatalog()}

	req := httptest.NewRequest(http.MethodGet, "/movies/Alien", nil)
	req.SetPathValue("title", "Alien")
	rec := httptest.NewRecorder()

	handler.ByTitle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rec.Code)
	}

	var resp movieResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Director.Name != "Ridley Scott" || resp.Director.Birth != "1937-11-30" {
		t.Fatalf("unexpected director %+v", resp.Director)
	}
}

func TestMovieHandlerByTitleNotFound(t *testing.T) {
	handler := MovieHandler{Movies: testCatalog()}

	req := httptest.NewRequest(http.MethodGet, "/movies/Nope", nil)
	req.SetPathValue("title", "Nope")
	rec := httptest.NewRecorder()

	handler.ByTitle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestMovieHandlerGenreAndDirector(t *testing.T) {
	handler := MovieHandler{Movies: testCatalog()}

	req := httptest.NewRequest(http.MethodGet, "/movies/genres/Science%20Fiction", nil)
	req.SetPathValue("name", "Science Fiction")
	rec := httptest.NewRecorder()

	handler.Genre(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("genre: expected %d got %d", http.StatusOK, rec.Code)
	}

	var genre genreResponse
	if err := json.NewDecoder(rec.Body).Decode(&genre); err != nil {
		t.Fatalf("decode genre: %v", err)
	}
	if genre.Description == "" {
		t.Fatalf("expected genre description, got %+v", genre)
	}

	req = httptest.NewRequest(http.MethodGet, "/movies/directors/Ridley%20Scott", nil)
	req.SetPathValue("name", "Ridley Scott")
	rec = httptest.NewRecorder()

	handler.Director(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("director: expected %d got %d", http.StatusOK, rec.Code)
	}
}
