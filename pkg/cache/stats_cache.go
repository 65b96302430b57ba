package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrMiss reports that no cached value exists for the key. Callers check it
// with errors.Is and fall back to recomputing.
var ErrMiss = errors.New("cache: miss")

const (
	// SnapshotCacheTTL bounds staleness of the cached dashboard snapshot;
	// the worker invalidates eagerly on every change event, so the TTL only
	// matters when the worker is down.
	SnapshotCacheTTL = 10 * time.Minute

	snapshotCacheKeyPrefix = "stats"
)

// SnapshotCache stores the per-org aggregated dashboard snapshot as JSON.
// Keys are scoped by orgID to prevent cross-tenant data leakage.
// Key format: "stats:{orgID}"
type SnapshotCache struct {
	client *RedisClient
}

// NewSnapshotCache creates a SnapshotCache backed by the given RedisClient.
func NewSnapshotCache(r *RedisClient) *SnapshotCache {
	return &SnapshotCache{client: r}
}

// Get loads the cached snapshot for the org into dest.
// Returns ErrMiss when the key does not exist or has expired.
func (c *SnapshotCache) Get(ctx context.Context, orgID uuid.UUID, dest any) error {
	data, err := c.client.Client().Get(ctx, c.key(orgID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache decode: %w", err)
	}
	return nil
}

// Set stores the org's snapshot with the cache TTL.
func (c *SnapshotCache) Set(ctx context.Context, orgID uuid.UUID, snap any) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(orgID), data, SnapshotCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the org's cached snapshot. Called by the worker on every
// change-feed event so the next dashboard read recomputes.
func (c *SnapshotCache) Invalidate(ctx context.Context, orgID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(orgID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// key builds the Redis key: "stats:{orgID}"
func (c *SnapshotCache) key(orgID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", snapshotCacheKeyPrefix, orgID)
}
