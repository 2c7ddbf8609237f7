package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = time.Hour

// IdempotencyChecker backs the public booking endpoint's duplicate-submission
// guard. Key format: idem:booking:<client-supplied-key>; the value is the id
// of the booking created for that key.
type IdempotencyChecker struct {
	client *redis.Client
}

// NewIdempotencyChecker creates an IdempotencyChecker wrapping the given Redis client.
func NewIdempotencyChecker(client *redis.Client) *IdempotencyChecker {
	return &IdempotencyChecker{client: client}
}

// Get returns the booking id recorded for the key, or "" when unseen.
func (c *IdempotencyChecker) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("idempotency get: %w", err)
	}
	return val, nil
}

// Set records the booking created for the key (expires after idempotencyTTL).
func (c *IdempotencyChecker) Set(ctx context.Context, key, bookingID string) error {
	return c.client.Set(ctx, c.key(key), bookingID, idempotencyTTL).Err()
}

func (c *IdempotencyChecker) key(key string) string {
	return "idem:booking:" + key
}
