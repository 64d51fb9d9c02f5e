package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/feed"
	"github.com/aflondonor-afk/horario-app/internal/persistence"
	"github.com/aflondonor-afk/horario-app/internal/timetable"
)

// EventSource supplies the parsed schedule feed. Fetch failures are
// terminal for the requesting view; there is no retry.
type EventSource interface {
	Events(ctx context.Context) ([]feed.Event, error)
}

// StatusProvider supplies today's event status map.
type StatusProvider interface {
	StatusMap(ctx context.Context) (map[string]persistence.Status, error)
}

// GridEvent is one event placed on the grid, with its vertical box and
// today's status overlaid.
type GridEvent struct {
	Event  feed.Event
	Box    timetable.Box
	Status persistence.Status
}

// GridView is the assembled weekly grid for one selection: the filtered
// events, the derived room columns and the live time marker.
type GridView struct {
	Selection timetable.Selection
	Events    []GridEvent
	Columns   []timetable.Column
	NowMarker timetable.NowMarker
}

// GridService composes the feed, the filter, the layout mapper and the
// status overlay into rendered grid views.
type GridService struct {
	source   EventSource
	statuses StatusProvider
	shifts   ShiftRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewGridService wires dependencies for grid assembly.
func NewGridService(source EventSource, statuses StatusProvider, shifts ShiftRepository, now func() time.Time, logger *slog.Logger) *GridService {
	if now == nil {
		now = time.Now
	}
	return &GridService{
		source:   source,
		statuses: statuses,
		shifts:   shifts,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// Grid builds the supervisor view for an explicit block/floor/day selection.
func (s *GridService) Grid(ctx context.Context, sel timetable.Selection) (GridView, error) {
	if s == nil || s.source == nil {
		return GridView{}, fmt.Errorf("GridService is not configured")
	}

	events, err := s.source.Events(ctx)
	if err != nil {
		serviceLogger(ctx, s.logger, "grid", "assemble").ErrorContext(ctx, "feed unavailable", "error", err)
		return GridView{}, err
	}
	return s.assemble(ctx, events, sel)
}

// OperationGrid builds the assistant view parameterized by one of the
// principal's shifts.
func (s *GridService) OperationGrid(ctx context.Context, principal Principal, shiftID string) (GridView, Shift, error) {
	if s == nil || s.source == nil || s.shifts == nil {
		return GridView{}, Shift{}, fmt.Errorf("GridService is not configured")
	}

	stored, err := s.shifts.GetShift(ctx, shiftID)
	if err != nil {
		return GridView{}, Shift{}, mapShiftLookupError(err)
	}
	if stored.UserID != principal.UserID {
		return GridView{}, Shift{}, ErrUnauthorized
	}

	events, err := s.source.Events(ctx)
	if err != nil {
		return GridView{}, Shift{}, err
	}

	view, err := s.assemble(ctx, events, timetable.SelectionForShift(stored.Block, stored.Floor, stored.Day))
	if err != nil {
		return GridView{}, Shift{}, err
	}
	return view, toShift(stored), nil
}

func (s *GridService) assemble(ctx context.Context, events []feed.Event, sel timetable.Selection) (GridView, error) {
	filtered := timetable.Filter(events, sel)
	columns := timetable.DeriveColumns(filtered, sel)

	statuses := map[string]persistence.Status{}
	if s.statuses != nil {
		looked, err := s.statuses.StatusMap(ctx)
		if err != nil {
			return GridView{}, err
		}
		statuses = looked
	}

	placed := make([]GridEvent, 0, len(filtered))
	for _, event := range filtered {
		box, err := timetable.BoxFor(event)
		if err != nil {
			// A row with an unparseable or inverted time range cannot be
			// placed; skip it rather than sink the whole view.
			serviceLogger(ctx, s.logger, "grid", "assemble").WarnContext(ctx, "skipping unplaceable event",
				"event_id", event.ID, "error", err)
			continue
		}
		status, ok := statuses[event.ID]
		if !ok {
			status = persistence.StatusNone
		}
		placed = append(placed, GridEvent{Event: event, Box: box, Status: status})
	}

	return GridView{
		Selection: sel,
		Events:    placed,
		Columns:   columns,
		NowMarker: timetable.NowMarkerAt(s.now()),
	}, nil
}

func mapShiftLookupError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
