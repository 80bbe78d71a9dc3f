package session

import (
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"github.com/examtrainer/backend/internal/domain/question"
	"github.com/examtrainer/backend/internal/id"
	"github.com/examtrainer/backend/internal/ledger"
	"github.com/examtrainer/backend/internal/store"
)

// incorrectPenalty is subtracted per wrong answer. The running score is
// re-rounded to two decimals after each subtraction so repeated penalties
// never accumulate float drift.
const incorrectPenalty = 0.33

// ErrNoQuestions is returned when a session would start with an empty
// question sequence. Callers must not enter the test view.
var ErrNoQuestions = errors.New("no questions available")

// Indexer resolves a question text to its global index, -1 if unknown.
type Indexer interface {
	IndexOf(text string) int
}

// GradeResult is the outcome of grading one answer.
type GradeResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Result is the finalize outcome of a session.
type Result struct {
	Score          float64          `json:"score"`
	CorrectCount   int              `json:"correctCount"`
	IncorrectCount int              `json:"incorrectCount"`
	NewRecord      bool             `json:"newRecord"`
	Failures       []AnsweredRecord `json:"failures"`
}

// AdvanceResult is either the continuing snapshot or the finalize result.
type AdvanceResult struct {
	Finished bool      `json:"finished"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Result   *Result   `json:"result,omitempty"`
}

// Engine owns the lifecycle of the active test attempt: question sequence,
// scoring, failure bookkeeping, and snapshot persistence. The "no active
// session" case is an explicit nil; mutating calls without an active session
// are silent no-ops returning nil, since they arise from normal UI races
// rather than programmer error.
type Engine struct {
	indexer  Indexer
	ledger   *ledger.Ledger
	sessions *Adapter
	store    store.Store
	logger   *slog.Logger

	active *Snapshot
}

func NewEngine(indexer Indexer, led *ledger.Ledger, sessions *Adapter, st store.Store, logger *slog.Logger) *Engine {
	return &Engine{
		indexer:  indexer,
		ledger:   led,
		sessions: sessions,
		store:    st,
		logger:   logger,
	}
}

// Active returns the in-memory active snapshot, nil when no session runs.
func (e *Engine) Active() *Snapshot {
	return e.active
}

// Start begins a new session for a mode. Any stale persisted snapshot for the
// mode is discarded first. Must-know and mock sequences are shuffled; review
// and exam replays keep the given order.
func (e *Engine) Start(mode question.Mode, questions []question.Question) (*Snapshot, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	if err := e.Discard(mode); err != nil {
		e.logger.Warn("stale snapshot discard failed", "mode", mode, "error", err)
	}

	seq := slices.Clone(questions)
	if mode.Shuffled() {
		rand.Shuffle(len(seq), func(i, j int) {
			seq[i], seq[j] = seq[j], seq[i]
		})
	}

	e.active = &Snapshot{
		ID:        id.New(),
		Mode:      mode,
		Questions: seq,
		Failures:  []AnsweredRecord{},
	}
	return e.active, nil
}

// SubmitAnswer grades the selected option against the current question by
// exact string equality. It returns nil if there is no active session or the
// current question was already answered, so a double-submit changes nothing.
func (e *Engine) SubmitAnswer(selected string) *GradeResult {
	if e.active == nil || e.active.AnsweredCurrent || e.active.Finished() {
		return nil
	}

	snap := e.active
	cur := snap.Current()
	globalIndex := e.indexer.IndexOf(cur.Text)
	correct := selected == cur.CorrectAnswer

	if correct {
		snap.Score++
		snap.CorrectCount++
		if err := e.ledger.Remove(globalIndex); err != nil {
			e.logger.Warn("failure ledger update failed", "error", err)
		}
	} else {
		snap.Score = round2(snap.Score - incorrectPenalty)
		snap.IncorrectCount++
		if !snap.hasFailure(globalIndex) {
			snap.Failures = append(snap.Failures, AnsweredRecord{
				QuestionIndex: globalIndex,
				Question:      cur,
				UserAnswer:    selected,
			})
		}
		if err := e.ledger.Add(globalIndex); err != nil {
			e.logger.Warn("failure ledger update failed", "error", err)
		}
	}

	snap.AnsweredCurrent = true

	// A session still on its first question is not worth resuming; skipping
	// the save keeps a barely-started test from prompting "continue later".
	if snap.CurrentIndex > 0 {
		if err := e.sessions.Save(snap); err != nil {
			e.logger.Warn("snapshot save failed", "mode", snap.Mode, "error", err)
		}
	}

	return &GradeResult{IsCorrect: correct, CorrectAnswer: cur.CorrectAnswer}
}

// Advance moves to the next question, or finalizes the session when the
// position passes the last question. Returns nil without an active session.
func (e *Engine) Advance() *AdvanceResult {
	if e.active == nil {
		return nil
	}

	e.active.CurrentIndex++
	e.active.AnsweredCurrent = false

	if e.active.Finished() {
		res := e.finalize()
		e.active = nil
		return &AdvanceResult{Finished: true, Result: res}
	}
	return &AdvanceResult{Finished: false, Snapshot: e.active}
}

// ForceFinish ends the session early; remaining questions are never graded.
// Returns nil without an active session.
func (e *Engine) ForceFinish() *Result {
	if e.active == nil {
		return nil
	}
	res := e.finalize()
	e.active = nil
	return res
}

// finalize computes the clamped final score, updates the high score, clears
// the persisted snapshot, and reports the result. The record comparison uses
// the raw running score, matching what gets stored.
func (e *Engine) finalize() *Result {
	snap := e.active
	final := round2(math.Max(0, snap.Score))

	var high float64
	if err := e.store.Get(store.KeyHighScore, &high); err != nil && !errors.Is(err, store.ErrNotFound) {
		e.logger.Warn("high score read failed", "error", err)
	}

	newRecord := snap.Score > high
	if newRecord {
		if err := e.store.Set(store.KeyHighScore, snap.Score); err != nil {
			e.logger.Warn("high score save failed", "error", err)
		}
	}

	if err := e.sessions.Clear(snap.Mode); err != nil {
		e.logger.Warn("snapshot clear failed", "mode", snap.Mode, "error", err)
	}

	e.logger.Info("session finished",
		"mode", snap.Mode,
		"score", final,
		"correct", snap.CorrectCount,
		"incorrect", snap.IncorrectCount,
		"newRecord", newRecord,
	)

	return &Result{
		Score:          final,
		CorrectCount:   snap.CorrectCount,
		IncorrectCount: snap.IncorrectCount,
		NewRecord:      newRecord,
		Failures:       snap.Failures,
	}
}

// Save persists the active snapshot for "continue later". No-op without an
// active session.
func (e *Engine) Save() error {
	if e.active == nil {
		return nil
	}
	return e.sessions.Save(e.active)
}

// Restore rehydrates the persisted snapshot for a mode as the active session,
// so subsequent SubmitAnswer/Advance calls operate on it. Returns nil if no
// snapshot is persisted.
func (e *Engine) Restore(mode question.Mode) (*Snapshot, error) {
	snap, err := e.sessions.Load(mode)
	if err != nil || snap == nil {
		return nil, err
	}
	e.active = snap
	return snap, nil
}

// Discard clears the persisted snapshot for a mode and drops the active
// session if it belongs to that mode.
func (e *Engine) Discard(mode question.Mode) error {
	if e.active != nil && e.active.Mode == mode {
		e.active = nil
	}
	return e.sessions.Clear(mode)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
