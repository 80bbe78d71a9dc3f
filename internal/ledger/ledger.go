package ledger

import (
	"errors"
	"slices"

	"github.com/examtrainer/backend/internal/store"
)

// Ledger tracks the global indices of questions whose most recent grading was
// incorrect. Membership survives sessions and modes: answering a question
// correctly anywhere removes it, answering incorrectly (re-)adds it.
type Ledger struct {
	store store.Store
}

func New(s store.Store) *Ledger {
	return &Ledger{store: s}
}

func (l *Ledger) indices() ([]int, error) {
	var out []int
	if err := l.store.Get(store.KeyFailedQuestions, &out); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// Add records a failed question. No-op if already present or if globalIndex
// is the not-found sentinel.
func (l *Ledger) Add(globalIndex int) error {
	if globalIndex < 0 {
		return nil
	}
	indices, err := l.indices()
	if err != nil {
		return err
	}
	if slices.Contains(indices, globalIndex) {
		return nil
	}
	return l.store.Set(store.KeyFailedQuestions, append(indices, globalIndex))
}

// Remove clears a question from the ledger. No-op if absent or if globalIndex
// is the not-found sentinel.
func (l *Ledger) Remove(globalIndex int) error {
	if globalIndex < 0 {
		return nil
	}
	indices, err := l.indices()
	if err != nil {
		return err
	}
	i := slices.Index(indices, globalIndex)
	if i < 0 {
		return nil
	}
	return l.store.Set(store.KeyFailedQuestions, slices.Delete(indices, i, i+1))
}

// List returns the currently failed global indices in insertion order.
func (l *Ledger) List() ([]int, error) {
	return l.indices()
}

func (l *Ledger) Count() (int, error) {
	indices, err := l.indices()
	if err != nil {
		return 0, err
	}
	return len(indices), nil
}

// ResetAll clears the ledger. Used by explicit "reset progress".
func (l *Ledger) ResetAll() error {
	return l.store.Set(store.KeyFailedQuestions, []int{})
}
