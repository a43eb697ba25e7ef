package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/JanTran/movie-api/internal/logging"
	"github.com/JanTran/movie-api/internal/validate"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	respondJSON(ctx, w, status, map[string]string{"error": message})
}

// respondValidation surfaces every violated field at once as a 422.
func respondValidation(ctx context.Context, w http.ResponseWriter, verrs *validate.Errors) {
	respondJSON(ctx, w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs.Fields})
}

func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
