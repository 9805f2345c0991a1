// cache provides a read-through Redis cache for profile lookups. A nil
// *ProfileCache is valid and behaves as a permanent miss, so callers never
// branch on whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roomly-app/roomly-backend/internal/domain"
)

type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	if rdb == nil {
		return nil
	}
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

func profileKey(id int) string {
	return fmt.Sprintf("profile:%d", id)
}

// Get returns the cached profile or nil on a miss. Cache errors degrade to a
// miss; the store remains the source of truth.
func (c *ProfileCache) Get(ctx context.Context, id int) *domain.UserProfile {
	if c == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil
	}
	return &profile
}

func (c *ProfileCache) Set(ctx context.Context, profile *domain.UserProfile) {
	if c == nil || profile == nil {
		return
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, profileKey(profile.ID), raw, c.ttl).Err()
}

func (c *ProfileCache) Invalidate(ctx context.Context, id int) {
	if c == nil {
		return
	}
	_ = c.rdb.Del(ctx, profileKey(id)).Err()
}
