// Package redis provides the Redis cache implementation.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

var cacheTracer = otel.Tracer("redis.cache")

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = redis.Nil

// Cache is a read-through entity cache. Writers are expected to invalidate
// with Delete; the cache is never authoritative.
type Cache struct {
	client *Client
	group  singleflight.Group
}

// NewCache creates a cache over the given client.
func NewCache(client *Client) *Cache {
	return &Cache{
		client: client,
	}
}

// Get returns the raw cached bytes for key, or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.Get",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	val, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			span.SetAttributes(attribute.Bool("cache.hit", false))
			return nil, err
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	return val, nil
}

// Set stores a JSON-serialized value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	ctx, span := cacheTracer.Start(ctx, "cache.Set",
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.Int64("cache.ttl_ms", ttl.Milliseconds()),
		))
	defer span.End()

	bytes, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.client.rdb.Set(ctx, key, bytes, ttl).Err()
}

// Delete invalidates a key. Deleting an absent key is a no-op.
func (c *Cache) Delete(ctx context.Context, key string) error {
	ctx, span := cacheTracer.Start(ctx, "cache.Delete",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	return c.client.rdb.Del(ctx, key).Err()
}

// GetOrLoadSafe implements the read-through pattern with singleflight
// collapsing of concurrent loads for the same key: a hit returns the cached
// bytes; a miss runs loader once, caches the result and returns it. Backend
// failures are treated as misses and cache write failures do not fail the
// load, so only loader errors come back to the caller.
func (c *Cache) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.GetOrLoadSafe",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	val, err := c.client.rdb.Get(ctx, key).Bytes()
	if err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return val, nil
	}
	if err != redis.Nil {
		span.RecordError(err)
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))

	result, err, shared := c.group.Do(key, func() (interface{}, error) {
		// Another request may have filled the key while we waited.
		val, err := c.client.rdb.Get(ctx, key).Bytes()
		if err == nil {
			return val, nil
		}

		data, err := loader()
		if err != nil {
			return nil, err
		}

		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %w", err)
		}

		if err := c.client.rdb.Set(ctx, key, bytes, ttl).Err(); err != nil {
			span.RecordError(err)
		}

		return bytes, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("cache.shared", shared))
	return result.([]byte), nil
}
