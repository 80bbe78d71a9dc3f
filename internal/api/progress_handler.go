package api

import (
	"net/http"
)

// ── Response types ──────────────────────────────────────────────────────────

type QuestionStatsResponse struct {
	Total    int            `json:"total"`
	MustKnow int            `json:"must_know"`
	Exams    map[string]int `json:"exams"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /progress
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	progress, err := h.trainer.Progress()
	if err != nil {
		h.logger.Error("progress read failed", "error", err)
		http.Error(w, "failed to load progress", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// POST /progress/reset
func (h *Handler) resetProgress(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	if err := h.trainer.ResetProgress(); err != nil {
		h.logger.Error("progress reset failed", "error", err)
		http.Error(w, "failed to reset progress", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /questions/stats
func (h *Handler) questionStats(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	bank := h.trainer.Bank()
	exams := make(map[string]int)
	for _, examID := range bank.ExamIDs() {
		exams[examID] = len(bank.ByExam(examID))
	}

	respondJSON(w, http.StatusOK, QuestionStatsResponse{
		Total:    bank.Len(),
		MustKnow: len(bank.MustKnow()),
		Exams:    exams,
	})
}
