package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/gitwhisperer/whisper/internal/git"
)

const (
	backendBolt     = "bolt"
	boltOpenTimeout = 2 * time.Second
)

// BoltStore keeps one JSON document per commit in a bucket named after the
// namespace. LoadAll returns documents in key (hash) order.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
	once   sync.Once
}

// NewBoltStore opens (or creates) a BoltDB file at path.
func NewBoltStore(path, namespace string) (*BoltStore, error) {
	if path == "" {
		return nil, unavailable(backendBolt, "open", errors.New("database path is required"))
	}

	cleaned := filepath.Clean(path)
	if dir := filepath.Dir(cleaned); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, unavailable(backendBolt, "open", err)
		}
	}

	db, err := bolt.Open(cleaned, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, unavailable(backendBolt, "open", err)
	}

	bucket := []byte(namespace)
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, unavailable(backendBolt, "open", err)
	}

	return &BoltStore{db: db, bucket: bucket}, nil
}

func (s *BoltStore) Save(ctx context.Context, records []git.CommitRecord) error {
	if len(records) == 0 {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b := tx.Bucket(s.bucket)
		if b == nil {
			return errors.Errorf("bucket %q missing", s.bucket)
		}

		for _, r := range records {
			payload, err := encodeDocument(r)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(r.Hash), payload); err != nil {
				return err
			}
		}
		return nil
	})
	return unavailable(backendBolt, "save", err)
}

func (s *BoltStore) LoadAll(ctx context.Context) ([]StoredCommit, error) {
	result := []StoredCommit{}
	err := s.db.View(func(tx *bolt.Tx) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}

		return b.ForEach(func(_, v []byte) error {
			doc, err := decodeDocument(v)
			if err != nil {
				return err
			}
			result = append(result, doc)
			return nil
		})
	})
	if err != nil {
		return nil, unavailable(backendBolt, "load", err)
	}
	return result, nil
}

// Close shuts down the Bolt DB.
func (s *BoltStore) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}

// Compile-time interface conformance check.
var _ Store = (*BoltStore)(nil)
