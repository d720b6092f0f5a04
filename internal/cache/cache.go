// Package cache provides a Redis-backed cache for computed match sets.
// A missing or unreachable Redis degrades to a no-op so matching always
// works without it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonathan/job-radar/internal/types"
)

// DefaultTTL bounds how stale a cached match set may get before the next
// request recomputes it.
const DefaultTTL = 10 * time.Minute

// Cache wraps a Redis client. The zero value and a nil *Cache are both
// valid no-op caches.
type Cache struct {
	client *redis.Client
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// Connect dials Redis at redisURL (redis://...). An empty URL or an
// unreachable server yields a no-op cache rather than an error.
func Connect(ctx context.Context, redisURL string) *Cache {
	if redisURL == "" {
		return &Cache{ttl: DefaultTTL}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[CACHE] invalid redis URL, bypassing cache: %v", err)
		return &Cache{ttl: DefaultTTL}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[CACHE] redis unavailable, bypassing cache: %v", err)
		_ = client.Close()
		return &Cache{ttl: DefaultTTL}
	}

	return &Cache{client: client, ttl: DefaultTTL}
}

// Close releases the underlying connection.
func (c *Cache) Close() {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Close()
}

func (c *Cache) isUnavailable() bool {
	return c == nil || c.client == nil
}

func (c *Cache) warnUnavailableOnce(err error) {
	if c == nil {
		return
	}
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		log.Printf("[CACHE] redis unavailable, bypassing cache: %v", err)
	}
}

func matchKey(userID uuid.UUID) string {
	return "matches:" + userID.String()
}

// GetMatches returns the cached match set for a user. The second return
// reports whether anything was found; cache problems read as a miss.
func (c *Cache) GetMatches(ctx context.Context, userID uuid.UUID) ([]types.Match, bool) {
	if c.isUnavailable() {
		return nil, false
	}
	b, err := c.client.Get(ctx, matchKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warnUnavailableOnce(err)
		}
		return nil, false
	}
	var matches []types.Match
	if err := json.Unmarshal(b, &matches); err != nil {
		return nil, false
	}
	return matches, true
}

// SetMatches stores a user's match set with the cache TTL.
func (c *Cache) SetMatches(ctx context.Context, userID uuid.UUID, matches []types.Match) {
	if c.isUnavailable() {
		return
	}
	b, err := json.Marshal(matches)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, matchKey(userID), b, c.ttl).Err(); err != nil {
		c.warnUnavailableOnce(err)
	}
}

// InvalidateMatches drops a user's cached match set. Called after profile
// edits and after every ingestion pass that changed vacancies.
func (c *Cache) InvalidateMatches(ctx context.Context, userID uuid.UUID) {
	if c.isUnavailable() {
		return
	}
	if err := c.client.Del(ctx, matchKey(userID)).Err(); err != nil {
		c.warnUnavailableOnce(err)
	}
}

// InvalidateAll drops every cached match set, for use after ingestion
// changes the vacancy pool for everyone.
func (c *Cache) InvalidateAll(ctx context.Context) {
	if c.isUnavailable() {
		return
	}
	iter := c.client.Scan(ctx, 0, "matches:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[CACHE] failed to delete key %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		c.warnUnavailableOnce(err)
	}
}
