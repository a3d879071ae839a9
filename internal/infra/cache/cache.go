package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys and TTLs of the scheduling core
const (
	KeyActiveBoats = "boats:active"

	TTLBoats        = 5 * time.Minute
	TTLAvailability = time.Minute
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache: miss")

// AvailabilityKey returns the per-day availability cache key
func AvailabilityKey(date string) string {
	return "availability:" + date
}

// Cache is a thin JSON cache over redis. Callers treat every failure as
// a miss and fall through to the store; only explicit invalidation is
// part of an operation's contract.
type Cache struct {
	client *redis.Client
}

// New creates a cache over an established redis client
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// NewClient connects to redis and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping redis at %s: %w", addr, err)
	}

	return client, nil
}

// Get unmarshals the cached value for key into value
func (c *Cache) Get(ctx context.Context, key string, value any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache: get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("cache: unmarshal %s: %w", key, err)
	}

	return nil
}

// Save marshals value and stores it under key with the given TTL
func (c *Cache) Save(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: delete %s: %w", key, err)
	}
	return nil
}

// InvalidateDate drops the availability entry of one calendar day.
// Idempotent; called synchronously after every booking mutation.
func (c *Cache) InvalidateDate(ctx context.Context, date string) error {
	return c.Delete(ctx, AvailabilityKey(date))
}
