package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix drops every key that starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// Family returns the prefix matching every key built with Key(prefix, ...).
func Family(prefix string) string {
	return prefix + ":"
}

const (
	ProductKeyPrefix  = "product"
	CategoryKeyPrefix = "category"
	PeriodKeyPrefix   = "period"
	SettingsKeyPrefix = "settings"
)
