package application

import (
	"context"

	"github.com/aflondonor-afk/horario-app/internal/feed"
	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

// EventSourceFunc adapts a plain fetch function to EventSource.
type EventSourceFunc func(ctx context.Context) ([]feed.Event, error)

// Events calls the wrapped function.
func (f EventSourceFunc) Events(ctx context.Context) ([]feed.Event, error) {
	return f(ctx)
}

// CachedStatusProvider serves status lookups from the poller-maintained
// cache instead of the store.
type CachedStatusProvider struct {
	cache *StatusCache
}

// NewCachedStatusProvider wraps the cache.
func NewCachedStatusProvider(cache *StatusCache) *CachedStatusProvider {
	return &CachedStatusProvider{cache: cache}
}

// StatusMap returns the cached snapshot. An empty cache yields an empty map,
// never an error.
func (p *CachedStatusProvider) StatusMap(ctx context.Context) (map[string]persistence.Status, error) {
	if p == nil || p.cache == nil {
		return map[string]persistence.Status{}, nil
	}
	statuses, _ := p.cache.Snapshot()
	if statuses == nil {
		statuses = map[string]persistence.Status{}
	}
	return statuses, nil
}
