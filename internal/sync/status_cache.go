package sync

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const statusKeyPrefix = "sync:last:"

// StatusCache keeps the last reconciliation result per domain in Redis so
// the status endpoint can report across restarts.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatusCache builds a cache with the given TTL.
func NewStatusCache(client *redis.Client, ttl time.Duration) *StatusCache {
	return &StatusCache{client: client, ttl: ttl}
}

// Store records the result for its domain. Failures are returned for the
// caller to log; a stale cache never blocks reconciliation.
func (c *StatusCache) Store(ctx context.Context, result Result) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statusKeyPrefix+string(result.Domain), payload, c.ttl).Err()
}

// Get returns the cached result for a domain, or nil when absent.
func (c *StatusCache) Get(ctx context.Context, domain Domain) (*Result, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, statusKeyPrefix+string(domain)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAll returns cached results for every domain that has one.
func (c *StatusCache) GetAll(ctx context.Context) (map[Domain]Result, error) {
	out := make(map[Domain]Result)
	for _, domain := range Domains {
		result, err := c.Get(ctx, domain)
		if err != nil {
			return nil, err
		}
		if result != nil {
			out[domain] = *result
		}
	}
	return out, nil
}
