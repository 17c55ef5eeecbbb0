// Package workspace remembers the repositories added with `whisper add`.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrEmpty is returned by Last when no repository was added yet.
var ErrEmpty = errors.New("no repository added (use `whisper add <repo>`)")

// RepoEntry is one registered repository.
type RepoEntry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	URL     string    `json:"url,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// Registry persists entries as a JSON array.
type Registry struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// DefaultPath is ~/.whisper/repos.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	return filepath.Join(home, ".whisper", "repos.json"), nil
}

// Open returns a registry backed by path. The file is created on the first Add.
func Open(path string) *Registry {
	return &Registry{path: path, now: time.Now}
}

// Path returns the backing file.
func (r *Registry) Path() string {
	return r.path
}

// List returns all entries, oldest first.
func (r *Registry) List() ([]RepoEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Last returns the most recently added entry.
func (r *Registry) Last() (RepoEntry, error) {
	entries, err := r.List()
	if err != nil {
		return RepoEntry{}, err
	}
	if len(entries) == 0 {
		return RepoEntry{}, ErrEmpty
	}
	return entries[len(entries)-1], nil
}

// Add registers a repository. An existing entry with the same path is
// replaced and moved to the end, so Last returns it.
func (r *Registry) Add(entry RepoEntry) (RepoEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return RepoEntry{}, err
	}

	if entry.Name == "" {
		entry.Name = filepath.Base(entry.Path)
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = r.now().UTC()
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Path != entry.Path {
			kept = append(kept, e)
		}
	}
	kept = append(kept, entry)

	if err := r.save(kept); err != nil {
		return RepoEntry{}, err
	}
	return entry, nil
}

func (r *Registry) load() ([]RepoEntry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RepoEntry{}, nil
		}
		return nil, err
	}

	entries := []RepoEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return entries, nil
}

func (r *Registry) save(entries []RepoEntry) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	// Replace the file atomically.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}
