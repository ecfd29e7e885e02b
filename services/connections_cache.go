package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectionsCacheKey = "connections:reconciled"

// ConnectionsCache keeps a short-lived snapshot of the reconciliation
// payload in redis. The original UI cached the same payload client-side
// for five minutes; holding it server-side keeps the window identical
// while letting mutations invalidate it eagerly. With no redis client
// configured every call is a no-op.
type ConnectionsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewConnectionsCache(rdb *redis.Client) *ConnectionsCache {
	return &ConnectionsCache{rdb: rdb, ttl: 5 * time.Minute}
}

// Get unmarshals the cached payload into out and reports a hit.
func (c *ConnectionsCache) Get(ctx context.Context, out interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, connectionsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ redis get failed: %v", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("⚠️ cached connections payload is corrupt, dropping: %v", err)
		c.Invalidate(ctx)
		return false
	}
	return true
}

func (c *ConnectionsCache) Set(ctx context.Context, v interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("⚠️ failed to marshal connections payload for cache: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, connectionsCacheKey, raw, c.ttl).Err(); err != nil {
		log.Printf("⚠️ redis set failed: %v", err)
	}
}

func (c *ConnectionsCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, connectionsCacheKey).Err(); err != nil {
		log.Printf("⚠️ redis del failed: %v", err)
	}
}
