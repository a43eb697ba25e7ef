package handlers

import (
	"net/http"

	"github.com/JanTran/movie-api/internal/middleware"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux. Routes past
// registration and login sit behind the auth guard.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	authn := AuthHandler{Users: deps.Users, Tokens: deps.Tokens}
	users := UserHandler{Users: deps.Users}
	movies := MovieHandler{Movies: deps.Movies}

	guarded := middleware.RequireAuth(deps.Guard)
	protect := func(h http.HandlerFunc) http.Handler { return guarded(h) }

	mux.HandleFunc("GET /healthz", health.Handle)
	mux.HandleFunc("POST /users", authn.Register)
	mux.HandleFunc("POST /login", authn.Login)

	mux.Handle("GET /users/{username}", protect(users.Get))
	mux.Handle("PUT /users/{username}", protect(users.Update))
	mux.Handle("DELETE /users/{username}", protect(users.Delete))
	mux.Handle("POST /users/{username}/movies/{movieID}", protect(users.AddFavorite))
	mux.Handle("DELETE /users/{username}/movies/{movieID}", protect(users.RemoveFavorite))

	mux.Handle("GET /movies", protect(movies.List))
	mux.Handle("GET /movies/{title}", protect(movies.ByTitle))
	mux.Handle("GET /movies/genres/{name}", protect(movies.Genre))
	mux.Handle("GET /movies/directors/{name}", protect(movies.Director))
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users  UserStore
	Movies MovieStore
	Tokens TokenIssuer
	Guard  middleware.Authenticator
}
