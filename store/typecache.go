package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Gobd/fieldschema"
	"github.com/redis/go-redis/v9"
)

// TypeCache decorates a store with a Redis cache of declared types. Column
// types change with migrations only, so they are safe to keep for a long
// TTL. Redis failures never fail a lookup: the cache falls through to the
// wrapped store and logs a warning.
type TypeCache struct {
	fieldschema.Store
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// CacheOption configures a [TypeCache].
type CacheOption func(*TypeCache)

// WithTTL sets how long cached types live. Zero keeps them until evicted.
func WithTTL(d time.Duration) CacheOption {
	return func(c *TypeCache) { c.ttl = d }
}

// WithPrefix sets the Redis key prefix. The default is "fieldschema:type:".
func WithPrefix(p string) CacheOption {
	return func(c *TypeCache) { c.prefix = p }
}

// WithLogger sets the logger used for cache failures.
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *TypeCache) { c.logger = l }
}

// NewTypeCache wraps next with a Redis type cache.
func NewTypeCache(next fieldschema.Store, rdb redis.Cmdable, opts ...CacheOption) *TypeCache {
	c := &TypeCache{
		Store:  next,
		rdb:    rdb,
		ttl:    24 * time.Hour,
		prefix: "fieldschema:type:",
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *TypeCache) key(entity, field string) string {
	return c.prefix + entity + ":" + field
}

// DeclaredType implements [fieldschema.Store].
func (c *TypeCache) DeclaredType(ctx context.Context, entity, field string) (fieldschema.StoreType, error) {
	key := c.key(entity, field)
	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		return fieldschema.StoreType(cached), nil
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "type cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	t, err := c.Store.DeclaredType(ctx, entity, field)
	if err != nil {
		return "", err
	}
	if t == "" {
		return t, nil
	}
	if err := c.rdb.Set(ctx, key, string(t), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "type cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return t, nil
}
