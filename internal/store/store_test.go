package store

import (
	"path/filepath"
	"testing"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTempStore(t)

	in := State{ThreadID: "thread_1", RunID: "run_1", APIKey: "sk-test", Debug: true}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Fatalf("loaded %#v, want %#v", out, in)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	s := openTempStore(t)

	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != (State{}) {
		t.Fatalf("empty store loaded %#v, want zero state", out)
	}
}

func TestSaveOverwritesPrior(t *testing.T) {
	s := openTempStore(t)

	if err := s.Save(State{ThreadID: "old", RunID: "old", APIKey: "old", Debug: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(State{ThreadID: "new", RunID: "new", APIKey: "new"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.ThreadID != "new" || out.Debug {
		t.Fatalf("loaded %#v, want overwritten state", out)
	}
}

func TestClearWipesState(t *testing.T) {
	s := openTempStore(t)

	if err := s.Save(State{ThreadID: "thread_1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != (State{}) {
		t.Fatalf("state survived clear: %#v", out)
	}
}
