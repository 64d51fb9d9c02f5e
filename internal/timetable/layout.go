package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/feed"
)

// Visible window of the grid, in whole hours, and the vertical density used
// to translate minutes into pixels.
const (
	StartHour = 6
	EndHour   = 22

	PixelsPerMinute = 1.0
	PixelsPerHour   = PixelsPerMinute * 60
)

// ParseClock converts an "HH:MM" wall-clock string into minutes since
// midnight.
func ParseClock(value string) (int, error) {
	hourPart, minutePart, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, fmt.Errorf("timetable: invalid clock time %q", value)
	}
	hours, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("timetable: invalid clock time %q", value)
	}
	minutes, err := strconv.Atoi(minutePart)
	if err != nil {
		return 0, fmt.Errorf("timetable: invalid clock time %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("timetable: clock time %q out of range", value)
	}
	return hours*60 + minutes, nil
}

// Offset maps minutes since midnight onto a vertical pixel offset relative
// to the visible window's start.
func Offset(minutesSinceMidnight int) float64 {
	return float64(minutesSinceMidnight-StartHour*60) * PixelsPerMinute
}

// Box is the vertical placement of an event inside its column.
type Box struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// BoxFor computes an event's placement from its start and end times. Both
// times must fall on the same day with end after start; anything else is a
// feed defect reported as an error.
func BoxFor(event feed.Event) (Box, error) {
	start, err := ParseClock(event.StartTime)
	if err != nil {
		return Box{}, err
	}
	end, err := ParseClock(event.EndTime)
	if err != nil {
		return Box{}, err
	}
	if end <= start {
		return Box{}, fmt.Errorf("timetable: event %s ends at or before its start", event.ID)
	}
	return Box{
		Top:    Offset(start),
		Height: float64(end-start) * PixelsPerMinute,
	}, nil
}

// NowMarker is the live time indicator overlaid on the grid. It is hidden
// whenever the current time falls outside the visible window.
type NowMarker struct {
	Minutes int     `json:"minutes"`
	Offset  float64 `json:"offset"`
	Visible bool    `json:"visible"`
}

// NowMarkerAt computes the marker for the given wall-clock instant.
func NowMarkerAt(t time.Time) NowMarker {
	minutes := t.Hour()*60 + t.Minute()
	return NowMarker{
		Minutes: minutes,
		Offset:  Offset(minutes),
		Visible: minutes >= StartHour*60 && minutes <= EndHour*60,
	}
}
