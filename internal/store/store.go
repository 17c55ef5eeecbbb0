// Package store persists commit records keyed by commit hash.
//
// Every backend implements the same contract: Save upserts each record by
// hash, fully replacing any previous document, and LoadAll returns every
// stored document. Connectivity or I/O failures surface as
// *UnavailableError, which matches ErrStorageUnavailable.
package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/gitwhisperer/whisper/internal/git"
)

// ErrStorageUnavailable is matched by every backend failure.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is the persistence contract used by the ingestion pipeline.
type Store interface {
	// Save upserts records keyed by hash. An empty slice is a no-op.
	Save(ctx context.Context, records []git.CommitRecord) error
	// LoadAll returns every stored commit. Order is backend-defined.
	LoadAll(ctx context.Context) ([]StoredCommit, error)
	// Close releases the backend's resources.
	Close() error
}

// StoredCommit is the persisted view of a commit record.
// ID is the primary key and always equals Hash.
type StoredCommit struct {
	ID           string           `json:"_id"`
	Hash         string           `json:"hash"`
	Message      string           `json:"message"`
	FilesChanged []git.FileChange `json:"files_changed"`
}

// NewStoredCommit copies a record and injects its primary key.
func NewStoredCommit(r git.CommitRecord) StoredCommit {
	c := r.Clone()
	return StoredCommit{
		ID:           c.Hash,
		Hash:         c.Hash,
		Message:      c.Message,
		FilesChanged: c.FilesChanged,
	}
}

// Record converts the stored document back into a commit record.
func (s StoredCommit) Record() git.CommitRecord {
	return git.CommitRecord{
		Hash:         s.Hash,
		Message:      s.Message,
		FilesChanged: normalizeFiles(s.FilesChanged),
	}.Clone()
}

// UnavailableError wraps a backend failure.
type UnavailableError struct {
	Backend string
	Op      string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Backend, e.Op, ErrStorageUnavailable, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrStorageUnavailable }

func unavailable(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &UnavailableError{Backend: backend, Op: op, Err: err}
}

func normalizeFiles(files []git.FileChange) []git.FileChange {
	if files == nil {
		return []git.FileChange{}
	}
	return files
}

var errClosed = errors.New("store is closed")
