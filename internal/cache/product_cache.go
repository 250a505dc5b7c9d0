package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

const (
	AllProductsCacheKey   = "products:all"
	ProductsGenerationKey = "products:generation"
	cacheContextTimeout   = 2 * time.Second
)

// setIfGeneration stores the listing only while the generation still matches
// the one read before the database query.
const setIfGeneration = `
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`

// ProductCache holds the full catalog listing. Failures are logged and
// treated as misses so the database stays the source of truth.
//
// Readers take Generation before querying the database and hand it back to
// SetProducts. Invalidate bumps the generation, so a listing read before a
// write commits is never stored after it.
type ProductCache interface {
	GetProducts(ctx context.Context) ([]repository.Product, bool)
	Generation(ctx context.Context) (int64, bool)
	SetProducts(ctx context.Context, generation int64, products []repository.Product)
	Invalidate(ctx context.Context)
}

type RedisProductCache struct {
	redisClient redis.Cmdable
	logger      logs.Logger
	ttl         time.Duration
}

func NewRedisProductCache(redisClient redis.Cmdable, logger logs.Logger, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{
		redisClient: redisClient,
		logger:      logger,
		ttl:         ttl,
	}
}

func (c *RedisProductCache) GetProducts(ctx context.Context) ([]repository.Product, bool) {
	ctx, cancel := context.WithTimeout(ctx, cacheContextTimeout)
	defer cancel()

	cachedData, err := c.redisClient.Get(ctx, AllProductsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to get products from cache", "error", err)
		}
		return nil, false
	}

	products := make([]repository.Product, 0)
	if err := json.Unmarshal(cachedData, &products); err != nil {
		c.logger.Error("failed to unmarshal cached products", "error", err)
		return nil, false
	}

	return products, true
}

func (c *RedisProductCache) Generation(ctx context.Context) (int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, cacheContextTimeout)
	defer cancel()

	generation, err := c.redisClient.Get(ctx, ProductsGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}
		c.logger.Warn("failed to read products cache generation", "error", err)
		return 0, false
	}
	return generation, true
}

func (c *RedisProductCache) SetProducts(ctx context.Context, generation int64, products []repository.Product) {
	ctx, cancel := context.WithTimeout(ctx, cacheContextTimeout)
	defer cancel()

	data, err := json.Marshal(products)
	if err != nil {
		c.logger.Error("failed to marshal products for caching", "error", err)
		return
	}

	stored, err := c.redisClient.Eval(ctx, setIfGeneration,
		[]string{ProductsGenerationKey, AllProductsCacheKey},
		strconv.FormatInt(generation, 10), data, c.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		c.logger.Warn("failed to cache products", "error", err)
		return
	}
	if stored == 0 {
		c.logger.Debug("skipped caching stale products listing", "generation", generation)
	}
}

func (c *RedisProductCache) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheContextTimeout)
	defer cancel()

	if err := c.redisClient.Incr(ctx, ProductsGenerationKey).Err(); err != nil {
		c.logger.Warn("failed to bump products cache generation", "error", err)
	}
	if err := c.redisClient.Del(ctx, AllProductsCacheKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate products cache", "error", err)
		return
	}
	c.logger.Debug("products cache invalidated")
}

type NoopProductCache struct{}

func (NoopProductCache) GetProducts(context.Context) ([]repository.Product, bool) { return nil, false }
func (NoopProductCache) Generation(context.Context) (int64, bool)                  { return 0, false }
func (NoopProductCache) SetProducts(context.Context, int64, []repository.Product) {}
func (NoopProductCache) Invalidate(context.Context)                               {}
