package feed

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	hundredsPattern  = regexp.MustCompile(`([0-9])[0-9]{2}`)
	firstDigitSearch = regexp.MustCompile(`[0-9]`)
)

// FloorFromRoom derives the floor label from a room identifier. It looks for
// a digit immediately followed by two more digits (the hundreds digit of the
// room number, so "33-204" resolves to "2" and "A102" to "1"), falls back to
// the first digit anywhere in the string, and defaults to "1" when the room
// carries no digits at all.
func FloorFromRoom(room string) string {
	if match := hundredsPattern.FindStringSubmatch(room); match != nil {
		return match[1]
	}
	if digit := firstDigitSearch.FindString(room); digit != "" {
		return digit
	}
	return "1"
}

// ColorForSubject assigns a palette color to a subject name. The rolling
// hash runs on 32-bit arithmetic so that the distribution matches the feed
// producer's, keeping colors stable across sessions for the same subject.
func ColorForSubject(subject string) Color {
	var hash int32
	for _, ch := range subject {
		hash = int32(ch) + hash<<5 - hash
	}
	index := int64(hash)
	if index < 0 {
		index = -index
	}
	return palette[index%int64(len(palette))]
}

// AvatarURL builds a deterministic placeholder avatar reference for an
// instructor. When several names are packed into one field separated by "-",
// only the first is used.
func AvatarURL(name string) string {
	clean := strings.TrimSpace(strings.SplitN(name, "-", 2)[0])
	if clean == "" {
		clean = "Docente"
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(clean) + "&background=random&color=fff&size=64"
}
