package roster

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const dayKeyPrefix = "roster:day:"

// RedisDayCache caches day views in Redis as JSON with a TTL.
type RedisDayCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisDayCache creates a Redis-backed day cache.
func NewRedisDayCache(client redis.UniversalClient, ttl time.Duration) *RedisDayCache {
	return &RedisDayCache{client: client, ttl: ttl}
}

func (c *RedisDayCache) GetDay(ctx context.Context, date string) ([]Shift, bool, error) {
	raw, err := c.client.Get(ctx, dayKeyPrefix+date).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var shifts []Shift
	if err := json.Unmarshal(raw, &shifts); err != nil {
		// A corrupt entry is treated as a miss; the write path replaces it.
		return nil, false, nil
	}
	return shifts, true, nil
}

func (c *RedisDayCache) SetDay(ctx context.Context, date string, shifts []Shift) error {
	raw, err := json.Marshal(shifts)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dayKeyPrefix+date, raw, c.ttl).Err()
}

func (c *RedisDayCache) InvalidateDay(ctx context.Context, date string) error {
	return c.client.Del(ctx, dayKeyPrefix+date).Err()
}
