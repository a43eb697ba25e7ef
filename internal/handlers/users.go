package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/JanTran/movie-api/internal/auth"
	"github.com/JanTran/movie-api/internal/logging"
	"github.com/JanTran/movie-api/internal/models"
	"github.com/JanTran/movie-api/internal/repositories"
	"github.com/JanTran/movie-api/internal/validate"
)

// UserHandler implements the profile and favorites endpoints. Every endpoint
// requires the authenticated identity to match the {username} path parameter;
// the same rule applies to favorites add and remove.
type UserHandler struct {
	Users UserStore
}

// Get handles GET /users/{username} requests.
func (h UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := h.authorizeTarget(w, r)
	if !ok {
		return
	}

	user, err := h.Users.FindByUsername(ctx, username)
	if err != nil {
		h.respondStoreError(w, r, err, username)
		return
	}

	respondJSON(ctx, w, http.StatusOK, newUserResponse(user))
}

// Update handles PUT /users/{username} requests. Empty fields in the payload
// are left unchanged; provided fields are revalidated and a new password is
// re-hashed before persisting.
func (h UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	username, ok := h.authorizeTarget(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := decodeStrict(r, &req); err != nil {
		logger.Warn("invalid update payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := validate.UserUpdate{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Birthday: req.Birthday,
	}

	birthday, err := input.Validate()
	if err != nil {
		var verrs *validate.Errors
		if errors.As(err, &verrs) {
			logger.Warn("update failed validation", "username", username, "fields", len(verrs.Fields))
			respondValidation(ctx, w, verrs)
			return
		}
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := repositories.UserUpdate{Birthday: birthday}
	if req.Username != "" {
		update.Username = &req.Username
	}
	if req.Email != "" {
		update.Email = &req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", "error", err)
			respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
			return
		}
		hash := string(hashed)
		update.PasswordHash = &hash
	}

	user, err := h.Users.Update(ctx, username, update)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			logger.Warn("update username conflict", "username", username, "target", req.Username)
			respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("%s already exists", req.Username))
			return
		}
		h.respondStoreError(w, r, err, username)
		return
	}

	respondJSON(ctx, w, http.StatusOK, newUserResponse(user))
}

// Delete handles DELETE /users/{username} requests. Deletion is irreversible;
// a second delete reports not found.
func (h UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := h.authorizeTarget(w, r)
	if !ok {
		return
	}

	if err := h.Users.Delete(ctx, username); err != nil {
		h.respondStoreError(w, r, err, username)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"message": fmt.Sprintf("%s was deleted", username)})
}

// AddFavorite handles POST /users/{username}/movies/{movieID} requests. The
// insert is idempotent: adding a movie that is already a favorite returns the
// same record with no error.
func (h UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := h.authorizeTarget(w, r)
	if !ok {
		return
	}

	user, err := h.Users.AddFavorite(ctx, username, r.PathValue("movieID"))
	if err != nil {
		h.respondStoreError(w, r, err, username)
		return
	}

	respondJSON(ctx, w, http.StatusOK, newUserResponse(user))
}

// RemoveFavorite handles DELETE /users/{username}/movies/{movieID} requests.
// Removing a movie that is not a favorite is a no-op.
func (h UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := h.authorizeTarget(w, r)
	if !ok {
		return
	}

	user, err := h.Users.RemoveFavorite(ctx, username, r.PathValue("movieID"))
	if err != nil {
		h.respondStoreError(w, r, err, username)
		return
	}

	respondJSON(ctx, w, http.StatusOK, newUserResponse(user))
}

// authorizeTarget resolves the {username} path parameter and checks it against
// the authenticated identity. A mismatch is rejected before any side effect.
func (h UserHandler) authorizeTarget(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	username := r.PathValue("username")

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		logger.Error("handler reached without authenticated identity", "path", r.URL.Path)
		respondError(ctx, w, http.StatusUnauthorized, "invalid or expired token")
		return "", false
	}

	if identity.Username != username {
		logger.Warn("identity does not match target user", "identity", identity.Username, "target", username)
		respondError(ctx, w, http.StatusForbidden, "forbidden")
		return "", false
	}

	return username, true
}

func (h UserHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, username string) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if errors.Is(err, repositories.ErrNotFound) {
		logger.Warn("target user not found", "username", username)
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("%s was not found", username))
		return
	}

	logger.Error("user store failure", "error", err, "username", username)
	respondError(ctx, w, http.StatusInternalServerError, "unexpected error")
}

type updateRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
	Email    string `json:"Email"`
	Birthday string `json:"Birthday"`
}

type userResponse struct {
	ID             string    `json:"ID"`
	Username       string    `json:"Username"`
	Email          string    `json:"Email"`
	Birthday       string    `json:"Birthday,omitempty"`
	FavoriteMovies []string  `json:"FavoriteMovies"`
	CreatedAt      time.Time `json:"CreatedAt"`
	UpdatedAt      time.Time `json:"UpdatedAt"`
}

// newUserResponse maps a stored user to its outward shape. The password hash
// never leaves the handler layer.
func newUserResponse(user models.User) userResponse {
	favorites := user.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}

	resp := userResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FavoriteMovies: favorites,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
	if user.Birthday != nil {
		resp.Birthday = user.Birthday.Format("2006-01-02")
	}
	return resp
}
