package application

import (
	"sync"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

// StatusCache holds the most recent snapshot of today's event statuses. The
// supervisor grid reads it instead of hitting the store on every request;
// the log poller refreshes it on its interval and status writes push
// through immediately.
type StatusCache struct {
	mu        sync.RWMutex
	statuses  map[string]persistence.Status
	updatedAt time.Time
}

// NewStatusCache returns an empty cache.
func NewStatusCache() *StatusCache {
	return &StatusCache{statuses: make(map[string]persistence.Status)}
}

// Replace swaps the whole snapshot.
func (c *StatusCache) Replace(statuses map[string]persistence.Status, at time.Time) {
	if c == nil {
		return
	}
	cloned := make(map[string]persistence.Status, len(statuses))
	for eventID, status := range statuses {
		cloned[eventID] = status
	}

	c.mu.Lock()
	c.statuses = cloned
	c.updatedAt = at
	c.mu.Unlock()
}

// Set updates a single entry, keeping reads fresh between poll cycles.
func (c *StatusCache) Set(eventID string, status persistence.Status, at time.Time) {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.statuses == nil {
		c.statuses = make(map[string]persistence.Status)
	}
	c.statuses[eventID] = status
	c.updatedAt = at
	c.mu.Unlock()
}

// Snapshot returns a copy of the current statuses and when they were taken.
func (c *StatusCache) Snapshot() (map[string]persistence.Status, time.Time) {
	if c == nil {
		return nil, time.Time{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	cloned := make(map[string]persistence.Status, len(c.statuses))
	for eventID, status := range c.statuses {
		cloned[eventID] = status
	}
	return cloned, c.updatedAt
}
