// Package reminder nags assistants about classes that started without a
// status being recorded.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/feed"
	"github.com/aflondonor-afk/horario-app/internal/persistence"
	"github.com/aflondonor-afk/horario-app/internal/timetable"
)

// Reminder window: an event qualifies while its start lies this far in the
// past, inclusive on both ends.
const (
	WindowStart = 15 * time.Minute
	WindowEnd   = 25 * time.Minute
)

// EventSource supplies the events the monitor watches.
type EventSource interface {
	Events(ctx context.Context) ([]feed.Event, error)
}

// StatusProvider supplies today's event status map.
type StatusProvider interface {
	StatusMap(ctx context.Context) (map[string]persistence.Status, error)
}

// Monitor periodically scans the watched events and raises a reminder for
// every one that started 15–25 minutes ago with no status recorded. The
// same unresolved event re-alerts on every cycle while it stays inside the
// window; that nagging is intended, not a missing dedup.
type Monitor struct {
	events   EventSource
	statuses StatusProvider
	notifier Notifier
	gate     PermissionGate
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewMonitor wires a monitor. A zero interval defaults to one minute.
func NewMonitor(events EventSource, statuses StatusProvider, notifier Notifier, gate PermissionGate, interval time.Duration, now func() time.Time, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		events:   events,
		statuses: statuses,
		notifier: notifier,
		gate:     gate,
		interval: interval,
		now:      now,
		logger:   logger,
	}
}

// Run scans on the configured interval until ctx is cancelled. Delivery
// permission is requested once, lazily, on activation; when it is anything
// but granted the monitor degrades to the structured-log fallback.
func (m *Monitor) Run(ctx context.Context) {
	if m == nil || m.events == nil || m.statuses == nil {
		return
	}

	if m.gate != nil && m.gate.Permission() == PermissionUndetermined {
		m.gate.Request(ctx)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.scan(ctx)
		}
	}
}

func (m *Monitor) scan(ctx context.Context) {
	events, err := m.events.Events(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "reminder scan skipped", "error", err)
		return
	}
	statuses, err := m.statuses.StatusMap(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "reminder scan skipped", "error", err)
		return
	}

	now := m.now()
	for _, event := range events {
		if !Due(now, event.StartTime) {
			continue
		}
		if status, ok := statuses[event.ID]; ok && status != persistence.StatusNone {
			continue
		}
		m.raise(ctx, event)
	}
}

func (m *Monitor) raise(ctx context.Context, event feed.Event) {
	message := fmt.Sprintf("Registro pendiente: Aula %s (%s)", event.RoomID, event.Title)

	if m.gate != nil && m.gate.Permission() == PermissionGranted && m.notifier != nil {
		if err := m.notifier.Notify(ctx, message); err != nil {
			m.logger.WarnContext(ctx, "reminder delivery failed", "event_id", event.ID, "error", err)
		}
		return
	}
	// Permission unavailable: passive fallback.
	m.logger.WarnContext(ctx, "reminder (fallback)", "event_id", event.ID, "message", message)
}

// Due reports whether a class starting at the given HH:MM wall-clock time is
// inside the reminder window relative to now. Unparseable times never
// qualify.
func Due(now time.Time, startTime string) bool {
	start, err := timetable.ParseClock(startTime)
	if err != nil {
		return false
	}
	diff := now.Hour()*60 + now.Minute() - start
	return diff >= int(WindowStart.Minutes()) && diff <= int(WindowEnd.Minutes())
}
