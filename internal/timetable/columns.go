package timetable

import (
	"fmt"
	"sort"

	"github.com/aflondonor-afk/horario-app/internal/feed"
)

// Column is one rendered grid lane, corresponding to a single room. Columns
// are derived state and are recomputed whenever the filtered set changes.
type Column struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Alternate bool   `json:"alternate"`
}

// DeriveColumns collects the distinct room identifiers of the filtered
// events, sorted lexically, and tags every odd-indexed column for the
// alternating visual treatment.
func DeriveColumns(events []feed.Event, sel Selection) []Column {
	seen := make(map[string]struct{}, len(events))
	rooms := make([]string, 0, len(events))
	for _, event := range events {
		if _, ok := seen[event.RoomID]; ok {
			continue
		}
		seen[event.RoomID] = struct{}{}
		rooms = append(rooms, event.RoomID)
	}
	sort.Strings(rooms)

	subtitle := fmt.Sprintf("Bloque %s - Piso %s", sel.Block, sel.Floor)
	columns := make([]Column, 0, len(rooms))
	for index, room := range rooms {
		columns = append(columns, Column{
			ID:        room,
			Title:     room,
			Subtitle:  subtitle,
			Alternate: index%2 != 0,
		})
	}
	return columns
}
