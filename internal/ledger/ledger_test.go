package ledger_test

import (
	"testing"

	"github.com/examtrainer/backend/internal/ledger"
	"github.com/examtrainer/backend/internal/store"
)

func TestAddRemove_SetSemantics(t *testing.T) {
	l := ledger.New(store.NewMemory())

	for _, idx := range []int{4, 7, 4} {
		if err := l.Add(idx); err != nil {
			t.Fatalf("add %d: %v", idx, err)
		}
	}

	got, err := l.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0] != 4 || got[1] != 7 {
		t.Errorf("expected [4 7], got %v", got)
	}

	if err := l.Remove(4); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := l.Remove(4); err != nil {
		t.Fatalf("double remove: %v", err)
	}

	count, err := l.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining, got %d", count)
	}
}

func TestNotFoundSentinel_Ignored(t *testing.T) {
	l := ledger.New(store.NewMemory())

	if err := l.Add(-1); err != nil {
		t.Errorf("add sentinel: %v", err)
	}
	if err := l.Remove(-1); err != nil {
		t.Errorf("remove sentinel: %v", err)
	}

	count, _ := l.Count()
	if count != 0 {
		t.Errorf("sentinel must not be recorded, got %d entries", count)
	}
}

func TestConvergence_LastGradingWins(t *testing.T) {
	l := ledger.New(store.NewMemory())

	// Failed repeatedly with no correction: present.
	l.Add(3)
	l.Add(3)
	l.Add(3)
	if got, _ := l.List(); len(got) != 1 || got[0] != 3 {
		t.Fatalf("expected [3], got %v", got)
	}

	// Answered correctly anywhere: absent, regardless of prior history.
	if err := l.Remove(3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if count, _ := l.Count(); count != 0 {
		t.Errorf("expected empty ledger, got %d entries", count)
	}

	// Failed again afterwards: present again.
	l.Add(3)
	if count, _ := l.Count(); count != 1 {
		t.Errorf("expected re-added entry, got %d entries", count)
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	s := store.NewMemory()

	first := ledger.New(s)
	first.Add(1)
	first.Add(9)

	second := ledger.New(s)
	got, err := second.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ledger must survive across instances, got %v", got)
	}
}

func TestResetAll(t *testing.T) {
	l := ledger.New(store.NewMemory())
	l.Add(1)
	l.Add(2)

	if err := l.ResetAll(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if count, _ := l.Count(); count != 0 {
		t.Errorf("expected empty ledger after reset, got %d", count)
	}
}
