// internal/api/handler.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/examtrainer/backend/internal/service"
	"github.com/examtrainer/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of relying
// on package-level globals, every handler method receives its dependencies
// through this struct. The trainer is nil when the question load failed at
// startup; session endpoints then answer 503 until a restart fixes the data.
type Handler struct {
	trainer *service.Trainer
	store   store.Store
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(t *service.Trainer, st store.Store, logger *slog.Logger) *Handler {
	return &Handler{
		trainer: t,
		store:   st,
		logger:  logger,
	}
}

// available guards endpoints that need loaded questions. Returns false after
// writing the response when the trainer is disabled.
func (h *Handler) available(w http.ResponseWriter) bool {
	if h.trainer == nil {
		http.Error(w, "questions failed to load, tests are unavailable", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON parses the request body into v. Returns false after writing a
// 400 response on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}
