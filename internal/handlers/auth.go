package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JanTran/movie-api/internal/logging"
	"github.com/JanTran/movie-api/internal/models"
	"github.com/JanTran/movie-api/internal/repositories"
	"github.com/JanTran/movie-api/internal/validate"
)

// AuthHandler implements registration and login.
type AuthHandler struct {
	Users   UserStore
	Tokens  TokenIssuer
	NowFunc func() time.Time
}

// Register handles POST /users requests.
func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Users == nil {
		logger.Error("user store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "registration unavailable")
		return
	}

	var req registerRequest
	if err := decodeStrict(r, &req); err != nil {
		logger.Warn("invalid registration payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := validate.NewUser{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Birthday: req.Birthday,
	}

	birthday, err := input.Validate()
	if err != nil {
		var verrs *validate.Errors
		if errors.As(err, &verrs) {
			logger.Warn("registration failed validation", "fields", len(verrs.Fields))
			respondValidation(ctx, w, verrs)
			return
		}
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
		return
	}

	now := h.now()
	user := models.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   string(hashed),
		Birthday:       birthday,
		FavoriteMovies: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			logger.Warn("registration conflict", "username", req.Username)
			respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("%s already exists", req.Username))
			return
		}
		logger.Error("failed to create user", "error", err, "username", req.Username)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create account")
		return
	}

	respondJSON(ctx, w, http.StatusCreated, newUserResponse(user))
}

// Login handles POST /login requests, exchanging credentials for a signed
// access token.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Users == nil || h.Tokens == nil {
		logger.Error("authentication dependencies unavailable", "hasUsers", h.Users != nil, "hasTokens", h.Tokens != nil)
		respondError(ctx, w, http.StatusInternalServerError, "authentication unavailable")
		return
	}

	var req loginRequest
	if err := decodeStrict(r, &req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		logger.Warn("login missing credentials", "username", req.Username)
		respondError(ctx, w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.Error("login user lookup failed", "error", err, "username", req.Username)
			respondError(ctx, w, http.StatusInternalServerError, "unable to verify credentials")
			return
		}
		logger.Warn("login unknown username", "username", req.Username)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("login password mismatch", "username", req.Username)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(user.Username)
	if err != nil {
		logger.Error("failed to issue token", "error", err, "username", user.Username)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create token")
		return
	}

	respondJSON(ctx, w, http.StatusOK, loginResponse{
		User:      newUserResponse(user),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	})
}

type registerRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
	Email    string `json:"Email"`
	Birthday string `json:"Birthday"`
}

type loginRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type loginResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (h AuthHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
