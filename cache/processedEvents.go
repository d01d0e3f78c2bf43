// Package cache keeps short-lived markers in Redis.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProcessedEvents remembers which payment webhook events were already applied.
type ProcessedEvents struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewProcessedEvents(client *redis.Client, ttl time.Duration) *ProcessedEvents {
	return &ProcessedEvents{Client: client, TTL: ttl}
}

func (c *ProcessedEvents) EventKey(eventID string) string {
	return "webhook:event:" + eventID
}

func (c *ProcessedEvents) Seen(ctx context.Context, eventID string) (bool, error) {
	res, err := c.Client.Exists(ctx, c.EventKey(eventID)).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *ProcessedEvents) MarkProcessed(ctx context.Context, eventID string) error {
	return c.Client.SetNX(ctx, c.EventKey(eventID), "1", c.TTL).Err()
}

// NoopLedger is used without Redis. Duplicate deliveries are then absorbed by
// the order's pending status guard alone.
type NoopLedger struct{}

func (NoopLedger) Seen(context.Context, string) (bool, error) { return false, nil }

func (NoopLedger) MarkProcessed(context.Context, string) error { return nil }
