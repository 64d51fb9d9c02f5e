package timetable

import (
	"strconv"

	"github.com/aflondonor-afk/horario-app/internal/feed"
)

// Selection narrows the event set to one building block, floor and day.
type Selection struct {
	Block string
	Floor string
	Day   string
}

// SelectionForShift converts a shift's context into a selection. Shifts
// store the floor as an integer while events derive it as a string.
func SelectionForShift(block string, floor int, day string) Selection {
	return Selection{
		Block: block,
		Floor: strconv.Itoa(floor),
		Day:   day,
	}
}

// Filter returns the events matching the selection: exact block match, exact
// derived-floor match and diacritic/case-insensitive day match.
func Filter(events []feed.Event, sel Selection) []feed.Event {
	day := NormalizeDay(sel.Day)
	var matched []feed.Event
	for _, event := range events {
		if event.Block != sel.Block {
			continue
		}
		if event.Floor != sel.Floor {
			continue
		}
		if NormalizeDay(event.Day) != day {
			continue
		}
		matched = append(matched, event)
	}
	return matched
}
