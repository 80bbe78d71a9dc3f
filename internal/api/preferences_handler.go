package api

import (
	"errors"
	"net/http"

	"github.com/examtrainer/backend/internal/store"
)

// Preferences share the persistence gateway with core progress but are plain
// opaque values to the backend; the UI owns their meaning.
var preferenceKeys = map[string]store.Key{
	"theme":         store.KeyTheme,
	"sound-muted":   store.KeySoundMuted,
	"questionCount": store.KeyQuestionCount,
}

type PreferenceValue struct {
	Value string `json:"value"`
}

// GET /preferences/{name}
func (h *Handler) getPreference(w http.ResponseWriter, r *http.Request) {
	key, ok := preferenceKeys[r.PathValue("name")]
	if !ok {
		http.Error(w, "unknown preference", http.StatusNotFound)
		return
	}

	var value string
	err := h.store.Get(key, &value)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "preference not set", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("preference read failed", "key", key, "error", err)
		http.Error(w, "failed to read preference", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, PreferenceValue{Value: value})
}

// PUT /preferences/{name}
func (h *Handler) setPreference(w http.ResponseWriter, r *http.Request) {
	key, ok := preferenceKeys[r.PathValue("name")]
	if !ok {
		http.Error(w, "unknown preference", http.StatusNotFound)
		return
	}

	var req PreferenceValue
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.store.Set(key, req.Value); err != nil {
		h.logger.Error("preference write failed", "key", key, "error", err)
		http.Error(w, "failed to save preference", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
