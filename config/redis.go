package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a client for the connections cache, or nil when
// REDIS_ADDR is unset or the server is unreachable. The cache degrades
// to pass-through in both cases.
func ConnectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️  REDIS_ADDR not set; connections cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("⚠️  Redis at %s unreachable, connections cache disabled: %v", addr, err)
		return nil
	}

	log.Println("✅ Redis connection established")
	return rdb
}
