package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appcrm "github.com/clinic/backend/internal/application/crm"
	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsCacheKey = "marketing:stats"

// RedisStatsCache implements StatsCache using Redis.
// The marketing stats snapshot is cached as a single JSON document and
// invalidated whenever a synchronization run changes the booking set.
type RedisStatsCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisStatsCacheOption is a functional option for configuring the cache
type RedisStatsCacheOption func(*RedisStatsCache)

// WithStatsTTL sets the cache entry lifetime
func WithStatsTTL(ttl time.Duration) RedisStatsCacheOption {
	return func(c *RedisStatsCache) {
		c.ttl = ttl
	}
}

// WithStatsLogger sets the logger for the cache
func WithStatsLogger(logger *zap.Logger) RedisStatsCacheOption {
	return func(c *RedisStatsCache) {
		c.logger = logger
	}
}

// NewRedisStatsCache creates a new Redis-based marketing stats cache
func NewRedisStatsCache(cfg config.RedisConfig, opts ...RedisStatsCacheOption) (*RedisStatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisStatsCache{
		client:     client,
		ownsClient: true,
		ttl:        5 * time.Minute,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisStatsCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisStatsCacheWithClient(client *redis.Client, opts ...RedisStatsCacheOption) *RedisStatsCache {
	cache := &RedisStatsCache{
		client:     client,
		ownsClient: false,
		ttl:        5 * time.Minute,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves the cached marketing stats. A miss returns (nil, nil).
func (c *RedisStatsCache) Get(ctx context.Context) (*crm.MarketingStats, error) {
	data, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for marketing stats")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get marketing stats from cache: %w", err)
	}

	var stats crm.MarketingStats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Error("Failed to unmarshal cached marketing stats", zap.Error(err))
		// Drop the corrupted entry and report a miss
		_ = c.client.Del(ctx, statsCacheKey)
		return nil, nil
	}

	c.logger.Debug("Cache hit for marketing stats")
	return &stats, nil
}

// Set stores the marketing stats snapshot in cache
func (c *RedisStatsCache) Set(ctx context.Context, stats *crm.MarketingStats) error {
	if stats == nil {
		return nil
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal marketing stats: %w", err)
	}

	if err := c.client.Set(ctx, statsCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set marketing stats in cache: %w", err)
	}

	c.logger.Debug("Cached marketing stats", zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate removes the cached marketing stats
func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, statsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate marketing stats cache: %w", err)
	}

	c.logger.Debug("Invalidated marketing stats cache")
	return nil
}

// Close releases the Redis client if this cache owns it
func (c *RedisStatsCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisStatsCache implements StatsCache
var _ appcrm.StatsCache = (*RedisStatsCache)(nil)
