package voiceagent

import (
	"context"
	"encoding/json"
	"time"

	"lead_gateway_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// CachedContactLookup is a cache-aside decorator over a ContactLookup.
// A short TTL keeps repeat callers inside the pre-call latency budget
// without serving week-old lead state. All cache failures are ignored:
// the cache can only make the path faster, never break it.
type CachedContactLookup struct {
	inner  ContactLookup
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedContactLookup wraps the given lookup with a Redis cache.
func NewCachedContactLookup(inner ContactLookup, client *redis.Client, ttl time.Duration, log *logger.Logger) *CachedContactLookup {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedContactLookup{inner: inner, client: client, ttl: ttl, log: log}
}

func cacheKey(phone string) string {
	return "leadctx:" + phone
}

// LookupByPhone serves from cache when possible, otherwise delegates and
// populates the cache on a hit from the inner lookup.
func (c *CachedContactLookup) LookupByPhone(ctx context.Context, phone string) (map[string]any, error) {
	if cached, err := c.client.Get(ctx, cacheKey(phone)).Bytes(); err == nil {
		var lead map[string]any
		if err := json.Unmarshal(cached, &lead); err == nil {
			return lead, nil
		}
	}

	lead, err := c.inner.LookupByPhone(ctx, phone)
	if err != nil || lead == nil {
		return lead, err
	}

	if data, err := json.Marshal(lead); err == nil {
		if err := c.client.Set(ctx, cacheKey(phone), data, c.ttl).Err(); err != nil {
			c.log.Debug("lead cache write failed", "error", err.Error())
		}
	}
	return lead, nil
}

// Compile-time check that CachedContactLookup implements ContactLookup
var _ ContactLookup = (*CachedContactLookup)(nil)
