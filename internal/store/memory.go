package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore is a non-durable gateway, used by tests and as a scratch store
// when no database path is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Key]json.RawMessage
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[Key]json.RawMessage)}
}

func (s *MemoryStore) Get(key Key, v any) error {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, v)
}

func (s *MemoryStore) Set(key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(key Key) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
