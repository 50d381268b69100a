package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTenantTTL is how long a cached tenant stays valid.
// Slug resolution runs on every request, so a short TTL keeps
// deactivations visible quickly without hammering the database.
const DefaultTenantTTL = 5 * time.Minute

// RedisTenantCache caches tenants by slug in Redis
type RedisTenantCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisTenantCacheOption is a functional option for configuring the cache
type RedisTenantCacheOption func(*RedisTenantCache)

// WithTenantTTL sets the cache entry TTL
func WithTenantTTL(ttl time.Duration) RedisTenantCacheOption {
	return func(c *RedisTenantCache) {
		c.ttl = ttl
	}
}

// WithTenantCacheLogger sets the logger for the cache
func WithTenantCacheLogger(logger *zap.Logger) RedisTenantCacheOption {
	return func(c *RedisTenantCache) {
		c.logger = logger
	}
}

// NewRedisTenantCache creates a tenant cache with its own Redis client
func NewRedisTenantCache(cfg config.RedisConfig, opts ...RedisTenantCacheOption) (*RedisTenantCache, error) {
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

	cache := &RedisTenantCache{
		client:     client,
		ownsClient: true,
		ttl:        DefaultTenantTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisTenantCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisTenantCacheWithClient(client *redis.Client, opts ...RedisTenantCacheOption) *RedisTenantCache {
	cache := &RedisTenantCache{
		client:     client,
		ownsClient: false,
		ttl:        DefaultTenantTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisTenantCache) cacheKey(slug string) string {
	return fmt.Sprintf("tenant:slug:%s", slug)
}

// GetBySlug retrieves a tenant from cache. A nil tenant with a nil error
// means a cache miss.
func (c *RedisTenantCache) GetBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	data, err := c.client.Get(ctx, c.cacheKey(slug)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for tenant", zap.String("slug", slug))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get tenant from cache",
			zap.String("slug", slug),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get tenant from cache: %w", err)
	}

	var tenant identity.Tenant
	if err := json.Unmarshal(data, &tenant); err != nil {
		// Corrupt entry, drop it so the next lookup repopulates
		_ = c.client.Del(ctx, c.cacheKey(slug)).Err()
		return nil, nil
	}

	return &tenant, nil
}

// Set stores a tenant in cache
func (c *RedisTenantCache) Set(ctx context.Context, tenant *identity.Tenant) error {
	if tenant == nil {
		return nil
	}

	data, err := json.Marshal(tenant)
	if err != nil {
		return fmt.Errorf("failed to marshal tenant: %w", err)
	}

	if err := c.client.Set(ctx, c.cacheKey(tenant.Slug), data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to cache tenant",
			zap.String("slug", tenant.Slug),
			zap.Error(err))
		return fmt.Errorf("failed to cache tenant: %w", err)
	}

	return nil
}

// Invalidate removes a tenant from cache.
// Called after tenant updates so stale activation state never outlives the TTL.
func (c *RedisTenantCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, c.cacheKey(slug)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tenant cache: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisTenantCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
