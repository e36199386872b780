package prices

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const redisKeyPrefix = "price:"

// RedisCache backs the price cache with Redis, letting multiple instances
// share quotes. Expiry is delegated to Redis key TTLs.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisCache creates a Redis-backed price cache
func NewRedisCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "price_cache").Logger(),
	}
}

// Get returns the cached price map for a coin, if present and unexpired
func (c *RedisCache) Get(ctx context.Context, coinID string) (map[string]decimal.Decimal, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+coinID).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("coin", coinID).Msg("redis get failed")
		return nil, false
	}

	var prices map[string]decimal.Decimal
	if err := json.Unmarshal(data, &prices); err != nil {
		c.log.Warn().Err(err).Str("coin", coinID).Msg("corrupt cache entry")
		return nil, false
	}
	return prices, true
}

// Set stores a price map under the cache TTL. Failures are logged and
// swallowed; a broken cache must not break price lookups.
func (c *RedisCache) Set(ctx context.Context, coinID string, prices map[string]decimal.Decimal) {
	data, err := json.Marshal(prices)
	if err != nil {
		c.log.Warn().Err(err).Str("coin", coinID).Msg("failed to marshal prices")
		return
	}

	if err := c.client.Set(ctx, redisKeyPrefix+coinID, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("coin", coinID).Msg("redis set failed")
	}
}
