package rotation_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/examtrainer/backend/internal/rotation"
	"github.com/examtrainer/backend/internal/store"
)

func newManager(t *testing.T, s store.Store, total int) *rotation.Manager {
	t.Helper()
	m := rotation.NewManager(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := m.Initialize(total); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return m
}

func TestInitialize_FirstRunBuildsFullPool(t *testing.T) {
	s := store.NewMemory()
	m := newManager(t, s, 10)

	if m.Remaining() != 10 {
		t.Errorf("expected full pool of 10, got %d", m.Remaining())
	}

	var persisted []int
	if err := s.Get(store.KeyRotationPool, &persisted); err != nil {
		t.Fatalf("pool must be persisted on first run: %v", err)
	}
	if len(persisted) != 10 {
		t.Errorf("persisted pool has %d entries, want 10", len(persisted))
	}
}

func TestInitialize_KeepsPersistedDepletion(t *testing.T) {
	s := store.NewMemory()
	if err := s.Set(store.KeyRotationPool, []int{7, 2}); err != nil {
		t.Fatalf("seed pool: %v", err)
	}

	m := newManager(t, s, 10)
	if m.Remaining() != 2 {
		t.Errorf("persisted depletion must survive, got %d remaining", m.Remaining())
	}
}

func TestDraw_RemovesAndPersists(t *testing.T) {
	s := store.NewMemory()
	m := newManager(t, s, 5)

	drawn, cycled, err := m.Draw(3)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if cycled {
		t.Error("a non-empty pool must not report a cycle restart")
	}
	if len(drawn) != 3 || m.Remaining() != 2 {
		t.Errorf("drawn %d, remaining %d; want 3 and 2", len(drawn), m.Remaining())
	}

	var persisted []int
	if err := s.Get(store.KeyRotationPool, &persisted); err != nil {
		t.Fatalf("get persisted pool: %v", err)
	}
	if len(persisted) != 2 {
		t.Errorf("persisted pool has %d entries, want 2", len(persisted))
	}
	for _, d := range drawn {
		for _, p := range persisted {
			if d == p {
				t.Errorf("index %d drawn but still in pool", d)
			}
		}
	}
}

func TestDraw_MoreThanPoolSize(t *testing.T) {
	m := newManager(t, store.NewMemory(), 4)

	drawn, _, err := m.Draw(20)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(drawn) != 4 {
		t.Errorf("expected all 4 indices, got %d", len(drawn))
	}
	if m.Remaining() != 0 {
		t.Errorf("expected empty pool, got %d", m.Remaining())
	}
}

func TestDraw_VisitsEveryIndexOncePerCycle(t *testing.T) {
	const total = 13
	m := newManager(t, store.NewMemory(), total)

	seen := make(map[int]int)
	for m.Remaining() > 0 {
		drawn, cycled, err := m.Draw(4)
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		if cycled {
			t.Fatal("cycle restart before exhaustion")
		}
		for _, idx := range drawn {
			seen[idx]++
		}
	}

	if len(seen) != total {
		t.Fatalf("expected %d distinct indices, got %d", total, len(seen))
	}
	for idx, n := range seen {
		if n != 1 {
			t.Errorf("index %d drawn %d times in one cycle", idx, n)
		}
	}
}

func TestDraw_ExhaustionRestartsCycle(t *testing.T) {
	m := newManager(t, store.NewMemory(), 6)

	if _, _, err := m.Draw(6); err != nil {
		t.Fatalf("deplete: %v", err)
	}

	drawn, cycled, err := m.Draw(2)
	if err != nil {
		t.Fatalf("draw after exhaustion: %v", err)
	}
	if !cycled {
		t.Error("expected cycle restart notification")
	}
	if len(drawn) != 2 || m.Remaining() != 4 {
		t.Errorf("drawn %d, remaining %d; want 2 and 4", len(drawn), m.Remaining())
	}
}

func TestReset_RefillsPool(t *testing.T) {
	s := store.NewMemory()
	m := newManager(t, s, 8)

	if _, _, err := m.Draw(5); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if m.Remaining() != 8 {
		t.Errorf("expected full pool after reset, got %d", m.Remaining())
	}

	var persisted []int
	if err := s.Get(store.KeyRotationPool, &persisted); err != nil || len(persisted) != 8 {
		t.Errorf("persisted pool after reset: %v (%v)", persisted, err)
	}
}
