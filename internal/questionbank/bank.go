package questionbank

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"

	"github.com/examtrainer/backend/internal/domain/question"
	"github.com/examtrainer/backend/internal/worker"
)

// LoadError wraps any failure while loading question sources. A single failed
// source fails the whole load; no partial question set is valid.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return "questionbank: load " + e.Source + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Bank holds the deduplicated, unified set of all known questions. A
// question's position in the canonical list is its global index, the identity
// used by the rotation pool and the failure ledger.
type Bank struct {
	questions   []question.Question
	indexByText map[string]int
	logger      *slog.Logger
}

func New(logger *slog.Logger) *Bank {
	return &Bank{logger: logger}
}

type fileResult struct {
	name      string
	questions []question.Question
	err       error
}

// Load fetches all configured source files concurrently, concatenates them in
// the given file order, and deduplicates by normalized text keeping the first
// occurrence. Global indices are assigned here and stay stable for the
// lifetime of the bank.
func (b *Bank) Load(ctx context.Context, src Source, files []string) error {
	if len(files) == 0 {
		return &LoadError{Source: "(none)", Err: errors.New("no source files configured")}
	}

	pool := worker.NewPool[fileResult](4, len(files))
	defer pool.Close()

	for _, name := range files {
		pool.Submit(name, func() fileResult {
			data, err := src.Fetch(ctx, name)
			if err != nil {
				return fileResult{name: name, err: err}
			}
			var qs []question.Question
			if err := json.Unmarshal(data, &qs); err != nil {
				return fileResult{name: name, err: err}
			}
			return fileResult{name: name, questions: qs}
		})
	}

	byFile := make(map[string][]question.Question, len(files))
	for range files {
		res := <-pool.Results()
		if res.Output.err != nil {
			return &LoadError{Source: res.Output.name, Err: res.Output.err}
		}
		byFile[res.Output.name] = res.Output.questions
	}

	var questions []question.Question
	indexByText := make(map[string]int)
	for _, name := range files {
		for _, q := range byFile[name] {
			key := question.NormalizeText(q.Text)
			if _, dup := indexByText[key]; dup {
				continue
			}
			indexByText[key] = len(questions)
			questions = append(questions, q)
		}
	}

	if len(questions) == 0 {
		return &LoadError{Source: "all sources", Err: errors.New("combined question set is empty")}
	}

	b.questions = questions
	b.indexByText = indexByText
	b.logger.Info("questions loaded", "files", len(files), "questions", len(questions))
	return nil
}

// Len returns the total number of distinct questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns the canonical question list, index-aligned with global indices.
// Callers must treat it as read-only.
func (b *Bank) All() []question.Question {
	return b.questions
}

// At returns the question at a global index.
func (b *Bank) At(globalIndex int) (question.Question, bool) {
	if globalIndex < 0 || globalIndex >= len(b.questions) {
		return question.Question{}, false
	}
	return b.questions[globalIndex], true
}

// IndexOf resolves a question text to its global index, or -1 if unknown.
func (b *Bank) IndexOf(text string) int {
	if i, ok := b.indexByText[question.NormalizeText(text)]; ok {
		return i
	}
	return -1
}

// ByExam returns the questions tagged with the given exam ID, in global order.
func (b *Bank) ByExam(examID string) []question.Question {
	var out []question.Question
	for _, q := range b.questions {
		if q.ExamID == examID {
			out = append(out, q)
		}
	}
	return out
}

// MustKnow returns the questions flagged as must-know, in global order.
func (b *Bank) MustKnow() []question.Question {
	var out []question.Question
	for _, q := range b.questions {
		if q.MustKnow {
			out = append(out, q)
		}
	}
	return out
}

// ExamIDs returns the distinct exam tags present in the bank, sorted.
func (b *Bank) ExamIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, q := range b.questions {
		if q.ExamID != "" && !seen[q.ExamID] {
			seen[q.ExamID] = true
			ids = append(ids, q.ExamID)
		}
	}
	sort.Strings(ids)
	return ids
}
