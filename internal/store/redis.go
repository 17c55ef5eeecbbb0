package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	redis "github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/gitwhisperer/whisper/internal/git"
)

const (
	backendRedis     = "redis"
	redisPingTimeout = 2 * time.Second
)

// RedisStore keeps one JSON document per commit under <namespace>:commit:<hash>.
// A sorted set indexes the hashes by first insertion.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore connects to Redis (or any RESP-compatible server) and verifies connectivity.
func NewRedisStore(ctx context.Context, opts *redis.Options, namespace string) (*RedisStore, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, unavailable(backendRedis, "connect", err)
	}

	return &RedisStore{
		client:    client,
		namespace: namespace,
	}, nil
}

func (s *RedisStore) docKey(hash string) string {
	return s.namespace + ":commit:" + hash
}

func (s *RedisStore) indexKey() string {
	return s.namespace + ":commits"
}

func (s *RedisStore) seqKey() string {
	return s.namespace + ":seq"
}

func (s *RedisStore) Save(ctx context.Context, records []git.CommitRecord) error {
	if len(records) == 0 {
		return nil
	}

	// Reserve a block of sequence numbers for this batch.
	end, err := s.client.IncrBy(ctx, s.seqKey(), int64(len(records))).Result()
	if err != nil {
		return unavailable(backendRedis, "save", err)
	}
	base := float64(end - int64(len(records)) + 1)

	pipe := s.client.TxPipeline()
	for i, r := range records {
		payload, err := encodeDocument(r)
		if err != nil {
			return unavailable(backendRedis, "save", err)
		}
		pipe.Set(ctx, s.docKey(r.Hash), payload, 0)
		// NX keeps the original position of documents that are being replaced.
		pipe.ZAddNX(ctx, s.indexKey(), redis.Z{Score: base + float64(i), Member: r.Hash})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable(backendRedis, "save", err)
	}
	return nil
}

func (s *RedisStore) LoadAll(ctx context.Context) ([]StoredCommit, error) {
	hashes, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, unavailable(backendRedis, "load", err)
	}
	if len(hashes) == 0 {
		return []StoredCommit{}, nil
	}

	keys := lo.Map(hashes, func(h string, _ int) string { return s.docKey(h) })
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable(backendRedis, "load", err)
	}

	result := make([]StoredCommit, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a document; skip it.
			continue
		}
		doc, err := decodeDocument([]byte(raw))
		if err != nil {
			return nil, unavailable(backendRedis, "load", errors.Wrapf(err, "commit %s", hashes[i]))
		}
		result = append(result, doc)
	}
	return result, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Compile-time interface conformance check.
var _ Store = (*RedisStore)(nil)
