package store

import (
	"context"
	"sync"

	"github.com/gitwhisperer/whisper/internal/git"
)

const backendMemory = "memory"

// MemoryStore keeps commits in-process. LoadAll returns first-insertion order.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string]StoredCommit
	order  []string
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]StoredCommit)}
}

func (s *MemoryStore) Save(ctx context.Context, records []git.CommitRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return unavailable(backendMemory, "save", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return unavailable(backendMemory, "save", errClosed)
	}

	for _, r := range records {
		if _, ok := s.docs[r.Hash]; !ok {
			s.order = append(s.order, r.Hash)
		}
		s.docs[r.Hash] = NewStoredCommit(r)
	}
	return nil
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]StoredCommit, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(backendMemory, "load", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, unavailable(backendMemory, "load", errClosed)
	}

	result := make([]StoredCommit, 0, len(s.order))
	for _, hash := range s.order {
		doc := s.docs[hash]
		result = append(result, NewStoredCommit(doc.Record()))
	}
	return result, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Compile-time interface conformance check.
var _ Store = (*MemoryStore)(nil)
