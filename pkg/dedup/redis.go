package dedup

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/gallerykit/pkg/fingerprint"
)

// defaultHashKey is the Redis hash holding fingerprint→name fields.
const defaultHashKey = "gallerykit:dedup"

// RedisIndex is an Index backed by a single Redis hash, for deployments
// where several gallery instances share one storage root. HSETNX gives the
// same atomic check-then-insert guarantee the in-memory index gets from its
// mutex.
type RedisIndex struct {
	client redis.Cmdable
	key    string
}

// RedisOption configures a RedisIndex.
type RedisOption func(*RedisIndex)

// WithHashKey overrides the Redis key the index lives under, allowing
// several galleries to share one Redis instance.
func WithHashKey(key string) RedisOption {
	return func(idx *RedisIndex) {
		if key != "" {
			idx.key = key
		}
	}
}

// NewRedisIndex wraps an existing Redis client.
func NewRedisIndex(client redis.Cmdable, opts ...RedisOption) *RedisIndex {
	idx := &RedisIndex{client: client, key: defaultHashKey}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// NewRedisIndexFromURL connects to Redis using a redis:// URL and verifies
// the connection before returning.
func NewRedisIndexFromURL(ctx context.Context, redisURL string, opts ...RedisOption) (*RedisIndex, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return NewRedisIndex(client, opts...), nil
}

func (idx *RedisIndex) Add(ctx context.Context, fp fingerprint.Fingerprint, storageName string) (string, bool, error) {
	if !fp.Valid() {
		return "", false, ErrInvalidFingerprint
	}

	added, err := idx.client.HSetNX(ctx, idx.key, fp.String(), storageName).Result()
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	if added {
		return storageName, true, nil
	}

	existing, err := idx.client.HGet(ctx, idx.key, fp.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Lost a race with a rollback; report as not present so the
			// caller retries its Add.
			return "", false, ErrIndexRace
		}
		return "", false, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return existing, false, nil
}

func (idx *RedisIndex) Lookup(ctx context.Context, fp fingerprint.Fingerprint) (string, bool, error) {
	name, err := idx.client.HGet(ctx, idx.key, fp.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return name, true, nil
}

func (idx *RedisIndex) Remove(ctx context.Context, fp fingerprint.Fingerprint) error {
	if err := idx.client.HDel(ctx, idx.key, fp.String()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return nil
}

func (idx *RedisIndex) Len(ctx context.Context) (int, error) {
	n, err := idx.client.HLen(ctx, idx.key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return int(n), nil
}
