// File: cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// SnapshotCache persists full collection snapshots for the offline read
// path. Save always replaces the previous snapshot for its collection;
// there is no merging and no versioning.
type SnapshotCache interface {
	Save(ctx context.Context, collection string, records any) error
	Load(ctx context.Context, collection string, out any) (bool, error)
}

type RedisSnapshotCache struct {
	client *redis.Client
}

func NewRedisSnapshotCache(client *redis.Client) SnapshotCache {
	return &RedisSnapshotCache{client: client}
}

const cacheKeyPrefix = "cache:snapshot:"

func snapshotKey(collection string) string {
	return fmt.Sprintf("%s%s", cacheKeyPrefix, collection)
}

// Save marshals records and replaces the stored snapshot for the
// collection. No TTL: a stale snapshot still beats an empty store when the
// remote is unreachable.
func (c *RedisSnapshotCache) Save(ctx context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", collection, err)
	}
	if err := c.client.Set(ctx, snapshotKey(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s snapshot: %w", collection, err)
	}
	return nil
}

// Load unmarshals the stored snapshot into out. Returns false with a nil
// error when no snapshot has ever been written.
func (c *RedisSnapshotCache) Load(ctx context.Context, collection string, out any) (bool, error) {
	val, err := c.client.Get(ctx, snapshotKey(collection)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s snapshot: %w", collection, err)
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false, fmt.Errorf("failed to decode %s snapshot: %w", collection, err)
	}
	return true, nil
}
