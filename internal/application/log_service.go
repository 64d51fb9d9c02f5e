package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

// LogRepository captures the persistence interactions needed by the service.
type LogRepository interface {
	CreateLog(ctx context.Context, log persistence.OperationalLog) error
	UpdateLog(ctx context.Context, log persistence.OperationalLog) error
	GetLogByEventAndDate(ctx context.Context, eventID, date string) (persistence.OperationalLog, error)
	ListLogsByDate(ctx context.Context, date string) ([]persistence.OperationalLog, error)
}

// statusCycle is the assistant tap-cycle. It is caller-facing policy: the
// store itself accepts any known status at any time.
var statusCycle = map[persistence.Status]persistence.Status{
	persistence.StatusNone:  persistence.StatusInUse,
	persistence.StatusInUse: persistence.StatusFree,
	persistence.StatusFree:  persistence.StatusNone,
}

// NextStatus returns the status following current in the tap cycle. Unknown
// values are treated as NONE.
func NextStatus(current persistence.Status) persistence.Status {
	if next, ok := statusCycle[current]; ok {
		return next
	}
	return statusCycle[persistence.StatusNone]
}

// OperationalLogService maintains the per-day status records. Logs from
// prior dates are retained but excluded from today queries.
type OperationalLogService struct {
	logs        LogRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewOperationalLogService wires dependencies for log operations.
func NewOperationalLogService(logs LogRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *OperationalLogService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &OperationalLogService{
		logs:        logs,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Today returns the current calendar date in the store's day granularity.
func (s *OperationalLogService) Today() string {
	return s.now().Format("2006-01-02")
}

// TodayLogs returns every log recorded for the current calendar date.
func (s *OperationalLogService) TodayLogs(ctx context.Context) ([]OperationalLog, error) {
	if s == nil || s.logs == nil {
		return nil, fmt.Errorf("OperationalLogService is not configured")
	}
	logs, err := s.logs.ListLogsByDate(ctx, s.Today())
	if err != nil {
		return nil, err
	}
	return toLogs(logs), nil
}

// StatusMap collapses today's logs into an event id to status lookup.
func (s *OperationalLogService) StatusMap(ctx context.Context) (map[string]persistence.Status, error) {
	logs, err := s.TodayLogs(ctx)
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]persistence.Status, len(logs))
	for _, log := range logs {
		statuses[log.EventID] = log.Status
	}
	return statuses, nil
}

// SetStatus upserts the log keyed by (eventID, today): an existing log is
// overwritten in place with its id preserved, otherwise a new log is
// created. Returns the resulting log.
func (s *OperationalLogService) SetStatus(ctx context.Context, eventID string, status persistence.Status, userID string) (OperationalLog, error) {
	if s == nil || s.logs == nil {
		return OperationalLog{}, fmt.Errorf("OperationalLogService is not configured")
	}

	eventID = strings.TrimSpace(eventID)
	vErr := &ValidationError{}
	if eventID == "" {
		vErr.add("event_id", "event id is required")
	}
	if !persistence.KnownStatus(status) {
		vErr.add("status", "status must be one of IN_USE, FREE, NONE")
	}
	if vErr.HasErrors() {
		return OperationalLog{}, vErr
	}

	today := s.Today()
	record := persistence.OperationalLog{
		EventID:   eventID,
		Date:      today,
		Status:    status,
		UpdatedBy: userID,
		Timestamp: s.now(),
	}

	existing, err := s.logs.GetLogByEventAndDate(ctx, eventID, today)
	switch {
	case err == nil:
		record.ID = existing.ID
		if updateErr := s.logs.UpdateLog(ctx, record); updateErr != nil {
			return OperationalLog{}, updateErr
		}
	case errors.Is(err, persistence.ErrNotFound):
		record.ID = s.idGenerator()
		if createErr := s.logs.CreateLog(ctx, record); createErr != nil {
			return OperationalLog{}, createErr
		}
	default:
		return OperationalLog{}, err
	}

	serviceLogger(ctx, s.logger, "logs", "set_status").InfoContext(ctx, "status recorded",
		"event_id", eventID, "status", string(status), "updated_by", userID)
	return toLog(record), nil
}

// CycleStatus advances the event's status one step along the tap cycle and
// persists the result.
func (s *OperationalLogService) CycleStatus(ctx context.Context, eventID, userID string) (OperationalLog, error) {
	if s == nil || s.logs == nil {
		return OperationalLog{}, fmt.Errorf("OperationalLogService is not configured")
	}

	current := persistence.StatusNone
	existing, err := s.logs.GetLogByEventAndDate(ctx, strings.TrimSpace(eventID), s.Today())
	switch {
	case err == nil:
		current = existing.Status
	case errors.Is(err, persistence.ErrNotFound):
	default:
		return OperationalLog{}, err
	}

	return s.SetStatus(ctx, eventID, NextStatus(current), userID)
}
