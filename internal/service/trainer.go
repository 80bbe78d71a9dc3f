// internal/service/trainer.go
package service

import (
	"errors"
	"log/slog"

	"github.com/examtrainer/backend/internal/domain/question"
	"github.com/examtrainer/backend/internal/ledger"
	"github.com/examtrainer/backend/internal/questionbank"
	"github.com/examtrainer/backend/internal/rotation"
	"github.com/examtrainer/backend/internal/session"
	"github.com/examtrainer/backend/internal/store"
)

// Trainer orchestrates the question bank, rotation pool, failure ledger and
// session engine into the operations the API layer exposes.
type Trainer struct {
	bank     *questionbank.Bank
	pool     *rotation.Manager
	ledger   *ledger.Ledger
	engine   *session.Engine
	sessions *session.Adapter
	store    store.Store
	logger   *slog.Logger

	defaultCount int
}

func NewTrainer(
	bank *questionbank.Bank,
	pool *rotation.Manager,
	led *ledger.Ledger,
	engine *session.Engine,
	sessions *session.Adapter,
	st store.Store,
	logger *slog.Logger,
	defaultCount int,
) *Trainer {
	return &Trainer{
		bank:         bank,
		pool:         pool,
		ledger:       led,
		engine:       engine,
		sessions:     sessions,
		store:        st,
		logger:       logger,
		defaultCount: defaultCount,
	}
}

// StartOptions tunes a session start. QuestionCount applies to normal mode;
// Questions supplies a fixed list for modes whose set the caller assembled
// itself (mock exams, ad-hoc review of a finished test's failures).
type StartOptions struct {
	QuestionCount int
	Questions     []question.Question
}

// StartResult carries the new snapshot plus the pool-cycle notification for
// the UI to present however it likes.
type StartResult struct {
	Snapshot           *session.Snapshot
	PoolCycleRestarted bool
}

// StartSession assembles the question sequence for a mode and starts the
// session. Returns session.ErrNoQuestions when the resulting set is empty.
func (t *Trainer) StartSession(mode question.Mode, opts StartOptions) (*StartResult, error) {
	questions, cycled, err := t.questionsFor(mode, opts)
	if err != nil {
		return nil, err
	}

	snap, err := t.engine.Start(mode, questions)
	if err != nil {
		return nil, err
	}

	t.logger.Info("session started", "mode", mode, "questions", len(snap.Questions))
	return &StartResult{Snapshot: snap, PoolCycleRestarted: cycled}, nil
}

func (t *Trainer) questionsFor(mode question.Mode, opts StartOptions) ([]question.Question, bool, error) {
	if len(opts.Questions) > 0 {
		return opts.Questions, false, nil
	}

	switch {
	case mode == question.ModeNormal:
		count := opts.QuestionCount
		if count <= 0 {
			count = t.defaultCount
		}
		indices, cycled, err := t.pool.Draw(count)
		if err != nil {
			// Drawn indices are still valid; a lost pool write only risks a
			// repeat after restart.
			t.logger.Warn("rotation pool persist failed", "error", err)
		}
		questions := make([]question.Question, 0, len(indices))
		for _, i := range indices {
			if q, ok := t.bank.At(i); ok {
				questions = append(questions, q)
			}
		}
		return questions, cycled, nil

	case mode == question.ModeMustKnow:
		return t.bank.MustKnow(), false, nil

	case mode == question.ModeReview:
		indices, err := t.ledger.List()
		if err != nil {
			return nil, false, err
		}
		questions := make([]question.Question, 0, len(indices))
		for _, i := range indices {
			if q, ok := t.bank.At(i); ok {
				questions = append(questions, q)
			}
		}
		return questions, false, nil

	case mode.IsExam():
		return t.bank.ByExam(mode.ExamID()), false, nil

	default:
		// Mock and unknown modes need a caller-supplied list.
		return nil, false, nil
	}
}

// SubmitAnswer grades an answer against the active session's current
// question. Nil when there is no active session or it was already answered.
func (t *Trainer) SubmitAnswer(selected string) *session.GradeResult {
	return t.engine.SubmitAnswer(selected)
}

// Advance moves the active session forward, finalizing at the end.
func (t *Trainer) Advance() *session.AdvanceResult {
	return t.engine.Advance()
}

// ForceFinish ends the active session early.
func (t *Trainer) ForceFinish() *session.Result {
	return t.engine.ForceFinish()
}

// Save persists the active session for "continue later".
func (t *Trainer) Save() error {
	return t.engine.Save()
}

// Active returns the in-memory active snapshot, nil when no session runs.
func (t *Trainer) Active() *session.Snapshot {
	return t.engine.Active()
}

// Resume rehydrates the persisted session for a mode, nil if none exists.
func (t *Trainer) Resume(mode question.Mode) (*session.Snapshot, error) {
	return t.engine.Restore(mode)
}

// Abandon discards a session without grading it. Drawn questions are not
// returned to the rotation pool.
func (t *Trainer) Abandon(mode question.Mode) error {
	return t.engine.Discard(mode)
}

// SavedModes reports which modes have a resumable persisted session, checked
// over the known mode set plus every exam tag present in the bank.
func (t *Trainer) SavedModes() ([]question.Mode, error) {
	candidates := []question.Mode{question.ModeNormal, question.ModeMustKnow, question.ModeReview}
	for _, examID := range t.bank.ExamIDs() {
		candidates = append(candidates, question.ExamMode(examID))
	}

	var saved []question.Mode
	for _, mode := range candidates {
		snap, err := t.sessions.Load(mode)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			saved = append(saved, mode)
		}
	}
	return saved, nil
}

// ResetProgress refills the rotation pool and clears the failure ledger.
func (t *Trainer) ResetProgress() error {
	if err := t.pool.Reset(); err != nil {
		return err
	}
	return t.ledger.ResetAll()
}

// Progress summarizes persisted state for the start screen.
type Progress struct {
	HighScore      float64 `json:"highScore"`
	FailedCount    int     `json:"failedCount"`
	PoolRemaining  int     `json:"poolRemaining"`
	TotalQuestions int     `json:"totalQuestions"`
}

func (t *Trainer) Progress() (*Progress, error) {
	var high float64
	if err := t.store.Get(store.KeyHighScore, &high); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	failed, err := t.ledger.Count()
	if err != nil {
		return nil, err
	}

	return &Progress{
		HighScore:      high,
		FailedCount:    failed,
		PoolRemaining:  t.pool.Remaining(),
		TotalQuestions: t.bank.Len(),
	}, nil
}

// Bank exposes the loaded question repository for read-only queries.
func (t *Trainer) Bank() *questionbank.Bank {
	return t.bank
}
