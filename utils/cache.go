// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"washbook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient stores booking sessions and submit locks.
	SessionClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// GetSessionClient returns the Redis client for booking sessions.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		SessionClient = newRedisClient(config.AppConfig.RedisSessionDB, "Sessions")
	}
	return SessionClient
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "Auth Cache")
	}
	return AuthCacheClient
}
