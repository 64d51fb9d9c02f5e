package application

import (
	"context"
	"testing"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

func TestStatusCache(t *testing.T) {
	at := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	t.Run("replace swaps the snapshot", func(t *testing.T) {
		cache := NewStatusCache()
		cache.Replace(map[string]persistence.Status{"evt-0": persistence.StatusInUse}, at)

		statuses, updatedAt := cache.Snapshot()
		if statuses["evt-0"] != persistence.StatusInUse {
			t.Errorf("status = %q, want %q", statuses["evt-0"], persistence.StatusInUse)
		}
		if !updatedAt.Equal(at) {
			t.Errorf("updatedAt = %v, want %v", updatedAt, at)
		}

		cache.Replace(map[string]persistence.Status{"evt-1": persistence.StatusFree}, at.Add(time.Second))
		statuses, _ = cache.Snapshot()
		if _, ok := statuses["evt-0"]; ok {
			t.Error("expected evt-0 to be gone after replace")
		}
	})

	t.Run("set updates a single entry", func(t *testing.T) {
		cache := NewStatusCache()
		cache.Replace(map[string]persistence.Status{"evt-0": persistence.StatusInUse}, at)
		cache.Set("evt-0", persistence.StatusFree, at.Add(time.Second))

		statuses, _ := cache.Snapshot()
		if statuses["evt-0"] != persistence.StatusFree {
			t.Errorf("status = %q, want %q", statuses["evt-0"], persistence.StatusFree)
		}
	})

	t.Run("snapshot hands out copies", func(t *testing.T) {
		cache := NewStatusCache()
		cache.Replace(map[string]persistence.Status{"evt-0": persistence.StatusInUse}, at)

		statuses, _ := cache.Snapshot()
		statuses["evt-0"] = persistence.StatusFree

		fresh, _ := cache.Snapshot()
		if fresh["evt-0"] != persistence.StatusInUse {
			t.Error("snapshot mutation leaked into the cache")
		}
	})
}

func TestCachedStatusProvider(t *testing.T) {
	cache := NewStatusCache()
	cache.Set("evt-0", persistence.StatusInUse, time.Now())

	provider := NewCachedStatusProvider(cache)
	statuses, err := provider.StatusMap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statuses["evt-0"] != persistence.StatusInUse {
		t.Errorf("status = %q, want %q", statuses["evt-0"], persistence.StatusInUse)
	}

	var nilProvider *CachedStatusProvider
	statuses, err = nilProvider.StatusMap(context.Background())
	if err != nil || statuses == nil {
		t.Fatalf("expected an empty map from a nil provider, got %v / %v", statuses, err)
	}
}
