package database

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
)

// NewRedisClient creates the Redis client shared by the cache and the
// revalidation queue
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})
}
