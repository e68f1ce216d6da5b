package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DeliveryCache implements ports.DeliveryCache using Redis. It stores the ack
// produced for a handled webhook delivery so byte-identical redeliveries are
// answered without touching the order store.
type DeliveryCache struct {
	client *goredis.Client
	prefix string
}

// NewDeliveryCache creates a new Redis-backed delivery cache.
func NewDeliveryCache(client *goredis.Client) *DeliveryCache {
	return &DeliveryCache{
		client: client,
		prefix: "delivery:",
	}
}

// GetAck retrieves a cached ack by delivery key.
// Returns nil, nil if the key does not exist.
func (c *DeliveryCache) GetAck(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis delivery get: %w", err)
	}
	return val, nil
}

// SetAck stores an ack in the delivery cache with TTL.
func (c *DeliveryCache) SetAck(ctx context.Context, key string, ack []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+key, ack, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis delivery set: %w", err)
	}
	return nil
}
