package application

import (
	"context"
	"fmt"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/feed"
	"github.com/aflondonor-afk/horario-app/internal/timetable"
)

// ReminderSource narrows the feed to the events the reminder monitor should
// watch: events falling under any shift scheduled for today's day name,
// regardless of owner. Rooms nobody claimed raise no reminders.
type ReminderSource struct {
	source EventSource
	shifts ShiftRepository
	now    func() time.Time
}

// NewReminderSource wires the composition.
func NewReminderSource(source EventSource, shifts ShiftRepository, now func() time.Time) *ReminderSource {
	if now == nil {
		now = time.Now
	}
	return &ReminderSource{source: source, shifts: shifts, now: now}
}

// Events returns the union of events covered by today's shifts, deduplicated
// by event id.
func (s *ReminderSource) Events(ctx context.Context) ([]feed.Event, error) {
	if s == nil || s.source == nil || s.shifts == nil {
		return nil, fmt.Errorf("ReminderSource is not configured")
	}

	events, err := s.source.Events(ctx)
	if err != nil {
		return nil, err
	}
	shifts, err := s.shifts.ListShifts(ctx)
	if err != nil {
		return nil, err
	}

	today := timetable.DayNameFor(s.now().Weekday())
	seen := make(map[string]struct{})
	var watched []feed.Event
	for _, shift := range shifts {
		if !timetable.SameDay(shift.Day, today) {
			continue
		}
		sel := timetable.SelectionForShift(shift.Block, shift.Floor, shift.Day)
		for _, event := range timetable.Filter(events, sel) {
			if _, ok := seen[event.ID]; ok {
				continue
			}
			seen[event.ID] = struct{}{}
			watched = append(watched, event)
		}
	}
	return watched, nil
}
