package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/middleware"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/cache"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/metrics"
)

// generations is shared by every service because invalidation crosses
// families (a category write drops product entries too).
var generations = cache.NewGenerations()

// readThrough serves key from c when present, otherwise calls load and stores
// the result. A result is not stored if the family was invalidated while it
// loaded. Cache failures are logged and never fail the request.
func readThrough[T any](ctx context.Context, c cache.Cache, family, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	logger := middleware.LoggerFromContext(ctx)

	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	if found {
		metrics.CacheHit(family)
		return cached, nil
	}

	metrics.CacheMiss(family)

	seen := generations.Current(cache.Family(family))

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	stored, err := generations.StoreIf(cache.Family(family), seen, func() error {
		return c.Set(ctx, key, value, ttl)
	})
	if err != nil {
		logger.Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if !stored {
		logger.Debug("Skipped caching a result loaded across an invalidation", slog.String("key", key))
	}

	return value, nil
}

// invalidate drops every listed resource family.
func invalidate(ctx context.Context, c cache.Cache, families ...string) {
	if c == nil {
		return
	}

	logger := middleware.LoggerFromContext(ctx)

	for _, family := range families {
		generations.Bump(cache.Family(family))

		if err := c.DeletePrefix(ctx, cache.Family(family)); err != nil {
			logger.Warn("Cache invalidation failed", slog.String("family", family), slog.String("error", err.Error()))
		}
	}
}
