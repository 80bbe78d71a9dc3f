package store_test

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/examtrainer/backend/internal/domain/question"
	"github.com/examtrainer/backend/internal/store"
)

func newSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "kv.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// Both gateway implementations must behave identically.
func stores(t *testing.T) map[string]store.Store {
	return map[string]store.Store{
		"sqlite": newSQLiteStore(t),
		"memory": store.NewMemory(),
	}
}

func TestGet_AbsentKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var v float64
			if err := s.Get(store.KeyHighScore, &v); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	type snapshot struct {
		Mode    string   `json:"mode"`
		Index   int      `json:"index"`
		Score   float64  `json:"score"`
		Options []string `json:"options"`
	}

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			want := snapshot{Mode: "normal", Index: 3, Score: 1.67, Options: []string{"a", "b"}}
			key := store.SessionKey(question.ModeNormal)

			if err := s.Set(key, want); err != nil {
				t.Fatalf("set: %v", err)
			}

			var got snapshot
			if err := s.Get(key, &got); err != nil {
				t.Fatalf("get: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
			}
		})
	}
}

func TestSet_Overwrites(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(store.KeyHighScore, 5.0); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(store.KeyHighScore, 7.34); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			var got float64
			if err := s.Get(store.KeyHighScore, &got); err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != 7.34 {
				t.Errorf("got %v, want 7.34", got)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(store.KeyRotationPool, []int{1, 2, 3}); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Delete(store.KeyRotationPool); err != nil {
				t.Fatalf("delete: %v", err)
			}

			var pool []int
			if err := s.Get(store.KeyRotationPool, &pool); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}

			// Deleting an absent key is not an error.
			if err := s.Delete(store.KeyRotationPool); err != nil {
				t.Errorf("double delete: %v", err)
			}
		})
	}
}

func TestSessionKey_DistinctPerMode(t *testing.T) {
	keys := map[store.Key]bool{}
	for _, mode := range []question.Mode{
		question.ModeNormal,
		question.ModeMustKnow,
		question.ModeReview,
		question.ExamMode("2024"),
		question.MockMode(1),
	} {
		keys[store.SessionKey(mode)] = true
	}
	if len(keys) != 5 {
		t.Errorf("expected 5 distinct session keys, got %d", len(keys))
	}
}
