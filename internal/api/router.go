// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Sessions
	mux.HandleFunc("POST /sessions", h.startSession)
	mux.HandleFunc("GET /sessions", h.listSavedSessions)
	mux.HandleFunc("GET /sessions/{mode}", h.resumeSession)
	mux.HandleFunc("POST /sessions/{mode}/answers", h.submitAnswer)
	mux.HandleFunc("POST /sessions/{mode}/advance", h.advanceSession)
	mux.HandleFunc("POST /sessions/{mode}/finish", h.finishSession)
	mux.HandleFunc("POST /sessions/{mode}/save", h.saveSession)
	mux.HandleFunc("DELETE /sessions/{mode}", h.abandonSession)

	// Progress
	mux.HandleFunc("GET /progress", h.getProgress)
	mux.HandleFunc("POST /progress/reset", h.resetProgress)

	// Questions
	mux.HandleFunc("GET /questions/stats", h.questionStats)

	// Preferences
	mux.HandleFunc("GET /preferences/{name}", h.getPreference)
	mux.HandleFunc("PUT /preferences/{name}", h.setPreference)
}
