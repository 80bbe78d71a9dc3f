package session

import (
	"errors"

	"github.com/examtrainer/backend/internal/domain/question"
	"github.com/examtrainer/backend/internal/store"
)

// Adapter persists session snapshots through the gateway, one durable key per
// mode. It owns only the key scheme; no transformation beyond JSON encoding.
type Adapter struct {
	store store.Store
}

func NewAdapter(s store.Store) *Adapter {
	return &Adapter{store: s}
}

func (a *Adapter) Save(snap *Snapshot) error {
	return a.store.Set(store.SessionKey(snap.Mode), snap)
}

// Load returns the persisted snapshot for a mode, or nil if none exists.
func (a *Adapter) Load(mode question.Mode) (*Snapshot, error) {
	var snap Snapshot
	err := a.store.Get(store.SessionKey(mode), &snap)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (a *Adapter) Clear(mode question.Mode) error {
	return a.store.Delete(store.SessionKey(mode))
}
