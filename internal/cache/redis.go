package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travelbook/booking-backend/internal/config"
)

// RedisCache provides short-lived exclusive holds on (unit, date) pairs.
// A hold taken at booking creation keeps a hotel room or car range from
// being double-booked during the window before payment confirmation.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache
func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// Ping verifies the redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// AcquireRangeHold takes an exclusive hold on every date of a unit's
// range. Acquisition is all-or-nothing: if any date is already held,
// the dates acquired so far are released and false is returned.
func (c *RedisCache) AcquireRangeHold(ctx context.Context, unitKey string, dates []string, ttl time.Duration) (bool, error) {
	var acquired []string

	for _, date := range dates {
		ok, err := c.client.SetNX(ctx, rangeHoldKey(unitKey, date), "held", ttl).Result()
		if err != nil {
			c.releaseKeys(ctx, unitKey, acquired)
			return false, err
		}
		if !ok {
			c.releaseKeys(ctx, unitKey, acquired)
			return false, nil
		}
		acquired = append(acquired, date)
	}

	return true, nil
}

// ReleaseRangeHold releases the hold on every date of a unit's range
func (c *RedisCache) ReleaseRangeHold(ctx context.Context, unitKey string, dates []string) error {
	return c.releaseKeys(ctx, unitKey, dates)
}

// Close closes the underlying redis client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) releaseKeys(ctx context.Context, unitKey string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, len(dates))
	for i, date := range dates {
		keys[i] = rangeHoldKey(unitKey, date)
	}
	return c.client.Del(ctx, keys...).Err()
}

func rangeHoldKey(unitKey, date string) string {
	return fmt.Sprintf("hold:%s:%s", unitKey, date)
}
