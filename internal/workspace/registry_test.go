package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := Open(filepath.Join(t.TempDir(), ".whisper", "repos.json"))
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	r.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return r
}

func TestRegistry_EmptyRegistry(t *testing.T) {
	r := newTestRegistry(t)

	entries, err := r.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("List() = %#v, expected empty slice", entries)
	}

	if _, err := r.Last(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Last() error = %v, want ErrEmpty", err)
	}
}

func TestRegistry_AddAndLast(t *testing.T) {
	r := newTestRegistry(t)

	first, err := r.Add(RepoEntry{Path: "/work/alpha"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if first.Name != "alpha" || first.AddedAt.IsZero() {
		t.Errorf("entry = %+v", first)
	}

	if _, err := r.Add(RepoEntry{Name: "beta", Path: "/tmp/clone", URL: "https://example.com/beta.git"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	last, err := r.Last()
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if last.Name != "beta" || last.URL != "https://example.com/beta.git" {
		t.Errorf("Last() = %+v", last)
	}
}

func TestRegistry_AddSamePathMovesToEnd(t *testing.T) {
	r := newTestRegistry(t)

	for _, p := range []string{"/a", "/b", "/a"} {
		if _, err := r.Add(RepoEntry{Path: p}); err != nil {
			t.Fatalf("Add(%s) error = %v", p, err)
		}
	}

	entries, err := r.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Path != "/b" || entries[1].Path != "/a" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRegistry_PersistsAcrossInstances(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Add(RepoEntry{Path: "/work/alpha"}); err != nil {
		t.Fatal(err)
	}

	reopened := Open(r.Path())
	last, err := reopened.Last()
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if last.Path != "/work/alpha" {
		t.Errorf("Last() = %+v", last)
	}
	if _, err := os.Stat(r.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestRegistry_CorruptFile(t *testing.T) {
	r := newTestRegistry(t)
	if err := os.MkdirAll(filepath.Dir(r.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(r.Path(), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := r.List(); err == nil {
		t.Error("expected error for corrupt registry")
	}
}
