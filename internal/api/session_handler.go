package api

import (
	"errors"
	"net/http"

	"github.com/examtrainer/backend/internal/domain/question"
	"github.com/examtrainer/backend/internal/service"
	"github.com/examtrainer/backend/internal/session"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	Mode          string              `json:"mode"`
	QuestionCount int                 `json:"question_count,omitempty"`
	Questions     []question.Question `json:"questions,omitempty"`
}

type StartSessionResponse struct {
	Snapshot           *session.Snapshot `json:"snapshot"`
	PoolCycleRestarted bool              `json:"pool_cycle_restarted"`
}

type SubmitAnswerRequest struct {
	SelectedOption string `json:"selected_option"`
}

type SavedSessionsResponse struct {
	Modes []question.Mode `json:"modes"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Mode == "" {
		http.Error(w, "mode is required", http.StatusBadRequest)
		return
	}

	result, err := h.trainer.StartSession(question.Mode(req.Mode), service.StartOptions{
		QuestionCount: req.QuestionCount,
		Questions:     req.Questions,
	})
	if errors.Is(err, session.ErrNoQuestions) {
		http.Error(w, "no questions available for this mode", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("session start failed", "mode", req.Mode, "error", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, StartSessionResponse{
		Snapshot:           result.Snapshot,
		PoolCycleRestarted: result.PoolCycleRestarted,
	})
}

// GET /sessions
func (h *Handler) listSavedSessions(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	modes, err := h.trainer.SavedModes()
	if err != nil {
		h.logger.Error("saved session scan failed", "error", err)
		http.Error(w, "failed to list saved sessions", http.StatusInternalServerError)
		return
	}
	if modes == nil {
		modes = []question.Mode{}
	}

	respondJSON(w, http.StatusOK, SavedSessionsResponse{Modes: modes})
}

// GET /sessions/{mode}
func (h *Handler) resumeSession(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	mode := question.Mode(r.PathValue("mode"))
	snap, err := h.trainer.Resume(mode)
	if err != nil {
		h.logger.Error("session resume failed", "mode", mode, "error", err)
		http.Error(w, "failed to resume session", http.StatusInternalServerError)
		return
	}
	if snap == nil {
		http.Error(w, "no saved session for this mode", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// activeFor checks that the active session belongs to the mode in the path.
// Returns nil after writing the response otherwise.
func (h *Handler) activeFor(w http.ResponseWriter, r *http.Request) *session.Snapshot {
	mode := question.Mode(r.PathValue("mode"))
	snap := h.trainer.Active()
	if snap == nil || snap.Mode != mode {
		http.Error(w, "no active session for this mode", http.StatusConflict)
		return nil
	}
	return snap
}

// POST /sessions/{mode}/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	if h.activeFor(w, r) == nil {
		return
	}

	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	graded := h.trainer.SubmitAnswer(req.SelectedOption)
	if graded == nil {
		// Already answered, a duplicate submit from rapid input.
		http.Error(w, "current question already answered", http.StatusConflict)
		return
	}

	respondJSON(w, http.StatusOK, graded)
}

// POST /sessions/{mode}/advance
func (h *Handler) advanceSession(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	if h.activeFor(w, r) == nil {
		return
	}

	result := h.trainer.Advance()
	if result == nil {
		http.Error(w, "no active session", http.StatusConflict)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// POST /sessions/{mode}/finish
func (h *Handler) finishSession(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	if h.activeFor(w, r) == nil {
		return
	}

	result := h.trainer.ForceFinish()
	if result == nil {
		http.Error(w, "no active session", http.StatusConflict)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// POST /sessions/{mode}/save
func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	if h.activeFor(w, r) == nil {
		return
	}

	if err := h.trainer.Save(); err != nil {
		h.logger.Error("session save failed", "error", err)
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /sessions/{mode}
func (h *Handler) abandonSession(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	mode := question.Mode(r.PathValue("mode"))
	if err := h.trainer.Abandon(mode); err != nil {
		h.logger.Error("session abandon failed", "mode", mode, "error", err)
		http.Error(w, "failed to abandon session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
