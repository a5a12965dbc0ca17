package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/todotracker/backend/pkg/config"
	"github.com/todotracker/backend/pkg/logger"
	"go.uber.org/zap"
)

var log = logger.NewLogger()

// Custom error types
var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
)

// Config holds the configuration for Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	DefaultTTL       time.Duration
	KeyPrefix        string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize:         100,
		MinIdleConns:     10,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: 2 * time.Second,
		DefaultTTL:       30 * time.Minute,
		KeyPrefix:        "todotracker:",
	}
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c.Password = cfg.Redis.Password
	c.DB = cfg.Redis.DB
	if cfg.Server.Timeout > 0 {
		c.OperationTimeout = cfg.Server.Timeout
	}
	return c
}

// CacheMetrics tracks cache hit/miss statistics with atomic operations
type CacheMetrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// RedisClient wraps the Redis client with additional functionality
type RedisClient struct {
	client    *redis.Client
	metrics   *CacheMetrics
	config    *Config
	closeOnce sync.Once
}

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client:  client,
		config:  cfg,
		metrics: &CacheMetrics{},
	}, nil
}

func (r *RedisClient) withContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.config.OperationTimeout)
}

func (r *RedisClient) prefixKey(key string) string {
	return r.config.KeyPrefix + key
}

// Get retrieves a value from the cache
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	opCtx, cancel := r.withContext(ctx)
	defer cancel()

	value, err := r.client.Get(opCtx, r.prefixKey(key)).Result()
	if err == redis.Nil {
		r.metrics.misses.Add(1)
		return "", ErrCacheNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	r.metrics.hits.Add(1)
	return value, nil
}

// Set stores a value in the cache with the given TTL
func (r *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	opCtx, cancel := r.withContext(ctx)
	defer cancel()

	if ttl == 0 {
		ttl = r.config.DefaultTTL
	}

	if err := r.client.Set(opCtx, r.prefixKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// Delete removes keys from the cache
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	opCtx, cancel := r.withContext(ctx)
	defer cancel()

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.prefixKey(k)
	}

	if err := r.client.Del(opCtx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// ClearByPattern removes all keys matching a pattern
func (r *RedisClient) ClearByPattern(ctx context.Context, pattern string) error {
	opCtx, cancel := r.withContext(ctx)
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(opCtx, cursor, r.prefixKey(pattern), 100).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCacheConnection, err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(opCtx, keys...).Err(); err != nil {
				log.Error("Failed to delete cache keys", zap.Error(err), zap.Int("key_count", len(keys)))
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

// HealthCheck verifies the Redis connection is alive
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	opCtx, cancel := r.withContext(ctx)
	defer cancel()
	return r.client.Ping(opCtx).Err()
}

// GetMetrics returns cache hit/miss counters
func (r *RedisClient) GetMetrics() map[string]interface{} {
	hits := r.metrics.hits.Load()
	misses := r.metrics.misses.Load()
	total := hits + misses

	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return map[string]interface{}{
		"hits":     hits,
		"misses":   misses,
		"hit_rate": hitRate,
	}
}

// GetClient exposes the underlying redis client for collaborators
// that need raw access (e.g. the rate limiter).
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close shuts down the Redis client
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.client.Close()
	})
	return err
}
