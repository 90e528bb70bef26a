package utils

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cppla/yatube/config"
)

const cacheKeyPrefix = "yatube:"

// NewRedisClient connects to the configured Redis and verifies it with PING.
func NewRedisClient(ctx context.Context, cfg config.AppConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// ConnectRedis returns a client when RedisHost is configured and reachable, nil otherwise.
func ConnectRedis(ctx context.Context, cfg config.AppConfig) *redis.Client {
	if cfg.RedisHost == "" {
		Sugar.Info("redis not configured, using in-process caches")
		return nil
	}
	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		Sugar.Warnf("redis unavailable, using in-process caches: %v", err)
		return nil
	}
	return client
}

// NewCache returns a cache isolated under namespace: Redis backed when client
// is non-nil, in-process otherwise.
func NewCache(client *redis.Client, namespace string) Cache {
	if client == nil {
		return NewMemoryCache()
	}
	return NewRedisCache(client, cacheKeyPrefix+namespace+":")
}
