package reminder

import (
	"context"
	"log/slog"
	"sync"
)

// Permission is the delivery-permission state for user-visible reminders.
type Permission int

const (
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

// Notifier delivers a user-visible reminder.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// PermissionGate answers whether visible reminders may be raised. Request is
// called once, lazily, when the monitor first activates.
type PermissionGate interface {
	Permission() Permission
	Request(ctx context.Context) Permission
}

// StaticGate is a gate with a fixed answer, for wiring and tests.
type StaticGate struct {
	mu      sync.Mutex
	granted bool
	asked   bool
}

// NewStaticGate returns a gate that reports undetermined until Request is
// called and then settles on the configured answer.
func NewStaticGate(granted bool) *StaticGate {
	return &StaticGate{granted: granted}
}

// Permission reports the current state.
func (g *StaticGate) Permission() Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.asked {
		return PermissionUndetermined
	}
	if g.granted {
		return PermissionGranted
	}
	return PermissionDenied
}

// Request settles the gate.
func (g *StaticGate) Request(ctx context.Context) Permission {
	g.mu.Lock()
	g.asked = true
	g.mu.Unlock()
	return g.Permission()
}

// LogNotifier writes reminders to the structured log. It doubles as the
// fallback path when delivery permission is unavailable.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier builds a notifier over the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify emits the reminder at info level.
func (n *LogNotifier) Notify(ctx context.Context, message string) error {
	n.logger.InfoContext(ctx, "reminder", "message", message)
	return nil
}
