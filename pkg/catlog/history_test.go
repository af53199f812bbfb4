package catlog

import (
	"errors"
	"testing"
	"time"
)

func TestHistoryCommit(t *testing.T) {
	h := newHistory()
	ts := time.Unix(100, 0)

	var persisted [][]string
	persist := func(lines []string) error {
		persisted = append(persisted, append([]string(nil), lines...))
		return nil
	}

	a := NewRecord(LevelInfo, "a", "first", ts)
	b := NewRecord(LevelError, "b", "second", ts)
	for _, r := range []Record{a, b} {
		ok, err := h.commit(r, persist)
		if !ok || err != nil {
			t.Fatalf("commit(%v) = %v, %v", r, ok, err)
		}
	}

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	if got := h.Records(); got[0] != a || got[1] != b {
		t.Errorf("Records() = %v", got)
	}
	if len(persisted) != 2 || len(persisted[1]) != 2 || persisted[1][1] != b.String() {
		t.Errorf("persist calls = %v", persisted)
	}

	// callers get copies
	got := h.Lines()
	got[0] = "changed"
	if h.Lines()[0] != a.String() {
		t.Error("Lines() exposes internal state")
	}
}

func TestHistoryCommit_PersistErrorKeepsRecord(t *testing.T) {
	h := newHistory()
	boom := errors.New("disk full")

	ok, err := h.commit(NewRecord(LevelInfo, "s", "m", time.Unix(0, 0)), func([]string) error { return boom })
	if !ok {
		t.Fatal("record should be accepted even when persisting fails")
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistoryRetire(t *testing.T) {
	h := newHistory()
	h.retire()

	called := false
	ok, err := h.commit(NewRecord(LevelInfo, "s", "m", time.Unix(0, 0)), func([]string) error {
		called = true
		return nil
	})
	if ok || err != nil {
		t.Errorf("commit after retire = %v, %v", ok, err)
	}
	if called {
		t.Error("retired history must not persist")
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}
