package rotation

import (
	"errors"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/examtrainer/backend/internal/store"
)

// Manager owns the pool of normal-mode question indices the user has not seen
// yet. Indices leave the pool when drawn and never return, even if the
// session that drew them is abandoned; an exhausted pool refills with the
// full range and starts a new cycle.
type Manager struct {
	store  store.Store
	logger *slog.Logger
	total  int
	pool   []int
}

func NewManager(s store.Store, logger *slog.Logger) *Manager {
	return &Manager{store: s, logger: logger}
}

// Initialize loads the persisted pool, or builds and persists a freshly
// shuffled full range on first run. A persisted pool is taken as-is so
// partial depletion survives restarts.
func (m *Manager) Initialize(totalQuestions int) error {
	m.total = totalQuestions

	var pool []int
	err := m.store.Get(store.KeyRotationPool, &pool)
	switch {
	case errors.Is(err, store.ErrNotFound):
		pool = m.fullRange()
		shuffle(pool)
		if err := m.store.Set(store.KeyRotationPool, pool); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	m.pool = pool
	return nil
}

// Draw removes up to n indices from the pool, persists the remainder, and
// returns the drawn indices. cycled reports that the pool was empty on entry
// and has been refilled before drawing, which callers surface as a
// "cycle restarting" notification. A persist failure still yields the drawn
// indices; the pool is simply re-drawable after a restart.
func (m *Manager) Draw(n int) (drawn []int, cycled bool, err error) {
	if len(m.pool) == 0 {
		m.pool = m.fullRange()
		cycled = true
		m.logger.Info("rotation pool exhausted, starting a new cycle", "total", m.total)
	}

	shuffle(m.pool)
	take := min(n, len(m.pool))
	drawn = slices.Clone(m.pool[:take])
	m.pool = slices.Clone(m.pool[take:])

	if err := m.store.Set(store.KeyRotationPool, m.pool); err != nil {
		return drawn, cycled, err
	}
	return drawn, cycled, nil
}

// Reset refills the pool with the full shuffled range. Used by explicit
// "reset progress".
func (m *Manager) Reset() error {
	pool := m.fullRange()
	shuffle(pool)
	if err := m.store.Set(store.KeyRotationPool, pool); err != nil {
		return err
	}
	m.pool = pool
	return nil
}

// Remaining returns how many indices are left in the current cycle.
func (m *Manager) Remaining() int {
	return len(m.pool)
}

func (m *Manager) fullRange() []int {
	indices := make([]int, m.total)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func shuffle(indices []int) {
	rand.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
}
