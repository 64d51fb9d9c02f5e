// Package jobs hosts the recurring background tasks. Every job runs on its
// own ticker and stops when its context is cancelled.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/application"
	"github.com/aflondonor-afk/horario-app/internal/logging"
	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

// StatusMapper supplies today's event status map.
type StatusMapper interface {
	StatusMap(ctx context.Context) (map[string]persistence.Status, error)
}

// StartLogPoller refreshes the status cache from the log store on a fixed
// interval, emulating the near-real-time visibility the supervisor view
// expects. It returns immediately; the poll loop runs until ctx is
// cancelled.
func StartLogPoller(ctx context.Context, interval time.Duration, logs StatusMapper, cache *application.StatusCache, logger *slog.Logger) {
	if logs == nil || cache == nil {
		return
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = logging.OrDefault(ctx)
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				statuses, err := logs.StatusMap(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "log poll failed", "error", err)
					continue
				}
				cache.Replace(statuses, time.Now())
			}
		}
	}()
}
