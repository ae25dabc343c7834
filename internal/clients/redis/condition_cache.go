package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/recs"
)

const keyPrefix = "weather:condition:"

// conditionCache is a redis-backed recs.ConditionCache, for deployments that
// want resolved conditions shared across processes. Redis errors degrade to a
// cache miss; the resolver's fallback chain handles the rest.
type conditionCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewConditionCache(addr string, log *logger.Logger) (recs.ConditionCache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &conditionCache{
		log: log.With("service", "RedisConditionCache"),
		rdb: rdb,
	}, nil
}

func (c *conditionCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("redis get failed, treating as miss", "error", err, "key", key)
		}
		return "", false
	}
	return val, val != ""
}

func (c *conditionCache) Put(ctx context.Context, key string, condition string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, condition, ttl).Err(); err != nil {
		c.log.Debug("redis set failed", "error", err, "key", key)
	}
}
