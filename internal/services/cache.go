package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// ErrCacheMiss is returned when a key is absent from the cache
var ErrCacheMiss = errors.New("cache miss")

// CacheService caches schema snapshots and validation summaries in Redis.
// A disabled cache degrades every operation to a no-op miss, so callers
// never branch on the Enabled flag themselves.
type CacheService struct {
	client     *redis.Client
	logger     *logger.Logger
	enabled    bool
	schemaTTL  time.Duration
	summaryTTL time.Duration
}

// NewCacheService creates a new cache service
func NewCacheService(client *redis.Client, logger *logger.Logger, cfg *config.Config) *CacheService {
	return &CacheService{
		client:     client,
		logger:     logger,
		enabled:    cfg.Cache.Enabled,
		schemaTTL:  time.Duration(cfg.Cache.SchemaTTL) * time.Second,
		summaryTTL: time.Duration(cfg.Cache.SummaryTTL) * time.Second,
	}
}

// BuildSchemaKey builds the cache key for a profile's schema snapshot
func BuildSchemaKey(profileID string) string {
	return fmt.Sprintf("schema:%s", profileID)
}

// BuildSummaryKey builds the cache key for a profile's validation summary
func BuildSummaryKey(profileID string) string {
	return fmt.Sprintf("summary:%s", profileID)
}

// GetSchema retrieves a cached schema snapshot
func (c *CacheService) GetSchema(ctx context.Context, profileID string) (models.FieldList, error) {
	var fields models.FieldList
	if err := c.get(ctx, BuildSchemaKey(profileID), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// SetSchema caches a schema snapshot for the configured TTL
func (c *CacheService) SetSchema(ctx context.Context, profileID string, fields models.FieldList) error {
	return c.set(ctx, BuildSchemaKey(profileID), fields, c.schemaTTL)
}

// GetSummary retrieves a cached validation summary
func (c *CacheService) GetSummary(ctx context.Context, profileID string) (*models.ValidationSummary, error) {
	var summary models.ValidationSummary
	if err := c.get(ctx, BuildSummaryKey(profileID), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SetSummary caches a validation summary for the configured TTL
func (c *CacheService) SetSummary(ctx context.Context, profileID string, summary models.ValidationSummary) error {
	return c.set(ctx, BuildSummaryKey(profileID), summary, c.summaryTTL)
}

// InvalidateProfile drops all cached entries for a profile. Called whenever
// a mapping or schema changes so stale summaries are never served.
func (c *CacheService) InvalidateProfile(ctx context.Context, profileID string) error {
	if !c.enabled {
		return nil
	}

	keys := []string{BuildSchemaKey(profileID), BuildSummaryKey(profileID)}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WithProfile(profileID).WithError(err).Warn("Cache invalidation failed")
		return err
	}
	return nil
}

// Ping reports cache connectivity
func (c *CacheService) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *CacheService) get(ctx context.Context, key string, out interface{}) error {
	if !c.enabled {
		return ErrCacheMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		// A corrupt entry behaves like a miss after eviction.
		c.logger.WithField("key", key).WithError(err).Warn("Dropping undecodable cache entry")
		c.client.Del(ctx, key)
		return ErrCacheMiss
	}
	return nil
}

func (c *CacheService) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}
