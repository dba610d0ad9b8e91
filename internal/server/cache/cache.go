// Package cache provides an optional Redis-backed cache for individual
// zone lookups. A nil client disables caching entirely; cache failures
// never surface to callers.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neogulmap/zonemap/internal/logging"
	"github.com/neogulmap/zonemap/internal/server/models"
)

const defaultTTL = time.Hour

type ZoneCache struct {
	rc     *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewZoneCache builds a zone cache over rc. Passing a nil client yields a
// disabled cache where every Get is a miss.
func NewZoneCache(rc *redis.Client, ttl time.Duration, logger logging.Logger) *ZoneCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ZoneCache{rc: rc, ttl: ttl, logger: logger.With("component", "zonecache")}
}

func zoneKey(id int) string { return fmt.Sprintf("zone:%d", id) }

// GetZone returns the cached zone and true on a hit.
func (c *ZoneCache) GetZone(ctx context.Context, id int) (*models.Zone, bool) {
	if c.rc == nil {
		return nil, false
	}

	s, err := c.rc.Get(ctx, zoneKey(id)).Result()
	if err != nil || s == "" {
		return nil, false
	}

	zone := &models.Zone{}
	if err := json.Unmarshal([]byte(s), zone); err != nil {
		c.logger.Warn(ctx, "corrupt cache entry, dropping", "id", id)
		c.Invalidate(ctx, id)
		return nil, false
	}
	return zone, true
}

// SetZone stores the zone; write errors are logged and swallowed.
func (c *ZoneCache) SetZone(ctx context.Context, zone *models.Zone) {
	if c.rc == nil || zone == nil {
		return
	}

	b, err := json.Marshal(zone)
	if err != nil {
		return
	}
	if err := c.rc.Set(ctx, zoneKey(zone.ID), string(b), c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "cache write failed", "id", zone.ID, "error", err.Error())
	}
}

// Invalidate drops the cached entry for a zone.
func (c *ZoneCache) Invalidate(ctx context.Context, id int) {
	if c.rc == nil {
		return
	}
	if err := c.rc.Del(ctx, zoneKey(id)).Err(); err != nil {
		c.logger.Warn(ctx, "cache invalidate failed", "id", id, "error", err.Error())
	}
}
