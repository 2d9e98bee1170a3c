package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mapledash/character-api/internal/core/domain"
)

const keyPrefix = "composite:"

// ResponseCache stores composite responses in Redis with the TTL as key expiry.
// Key format: composite:<signature>
type ResponseCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewResponseCache wraps client. A zero or negative TTL disables the cache.
func NewResponseCache(client redis.UniversalClient, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

func (c *ResponseCache) Get(ctx context.Context, signature string) (*domain.CompositeResponse, error) {
	if c.ttl <= 0 {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, c.key(signature)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var resp domain.CompositeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &resp, nil
}

func (c *ResponseCache) Put(ctx context.Context, signature string, resp *domain.CompositeResponse) error {
	if c.ttl <= 0 || resp == nil {
		return nil
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(signature), raw, c.ttl).Err()
}

// Clear removes every composite entry. It scans instead of FLUSHDB so a shared
// database keeps unrelated keys.
func (c *ResponseCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache clear: %w", err)
		}
	}
	return iter.Err()
}

func (c *ResponseCache) key(signature string) string {
	return keyPrefix + signature
}
