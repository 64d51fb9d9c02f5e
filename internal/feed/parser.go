package feed

import (
	"fmt"
	"strings"
)

// Feed row layout: the first five columns and the last two are positional,
// everything in between belongs to the subject. Subjects may themselves
// contain commas, which rules out a quoting-based CSV reader.
const (
	columnBlock = iota
	columnRoom
	columnDay
	columnStart
	columnEnd
	columnSubject // start of the variable-width subject region
)

// Parse converts the raw schedule feed into an ordered, index-stable event
// sequence. The first line is a header and is discarded. Rows shorter than
// the fixed layout are kept with empty fields rather than rejected; the feed
// producer owns row integrity.
func Parse(raw string) []Event {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) <= 1 {
		return nil
	}

	events := make([]Event, 0, len(lines)-1)
	for index, line := range lines[1:] {
		parts := strings.Split(strings.TrimRight(line, "\r"), ",")

		subject := ""
		if len(parts) > columnSubject+2 {
			subject = strings.Join(parts[columnSubject:len(parts)-2], ",")
		}
		group := part(parts, len(parts)-2)
		instructor := part(parts, len(parts)-1)
		room := part(parts, columnRoom)

		events = append(events, Event{
			ID:       fmt.Sprintf("evt-%d", index),
			Title:    subject,
			Subtitle: "Grupo " + group,
			Instructor: Instructor{
				Name:   instructor,
				Avatar: AvatarURL(instructor),
			},
			RoomID:    room,
			StartTime: part(parts, columnStart),
			EndTime:   part(parts, columnEnd),
			Color:     ColorForSubject(subject),
			Block:     part(parts, columnBlock),
			Day:       part(parts, columnDay),
			Floor:     FloorFromRoom(room),
		})
	}
	return events
}

func part(parts []string, index int) string {
	if index < 0 || index >= len(parts) {
		return ""
	}
	return parts[index]
}
