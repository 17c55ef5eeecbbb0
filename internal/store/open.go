package store

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
)

// DefaultNamespace names the collection (bucket, key prefix, table) commits are stored in.
const DefaultNamespace = "project_history"

// Options selects and configures a backend.
//
// Supported URLs:
//
//	memory://
//	redis://[user:password@]host:port[/db]   (also rediss://)
//	bolt://path/to/file.db
//	sqlite://path/to/file.db, sqlite://:memory:
type Options struct {
	URL       string
	Namespace string
}

// UnsupportedSchemeError reports a store URL whose scheme has no backend.
type UnsupportedSchemeError struct {
	URL string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported store URL %q (expected memory://, redis://, bolt:// or sqlite://)", e.URL)
}

// Scheme returns the scheme part of a store URL, or "" when there is none.
func Scheme(url string) string {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}

// Open connects to the backend selected by opts.URL.
func Open(ctx context.Context, opts Options) (Store, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	_, rest, _ := strings.Cut(opts.URL, "://")

	switch Scheme(opts.URL) {
	case "memory":
		return NewMemoryStore(), nil
	case "redis", "rediss":
		redisOpts, err := redis.ParseURL(opts.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		s, err := NewRedisStore(ctx, redisOpts, namespace)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "bolt":
		s, err := NewBoltStore(rest, namespace)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		dialector := WithSqlite(rest)
		if rest == ":memory:" {
			dialector = WithSqliteInMemory()
		}
		s, err := NewSQLStore(dialector, namespace)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &UnsupportedSchemeError{URL: opts.URL}
	}
}
