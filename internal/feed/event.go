package feed

// Color identifies one of the fixed palette entries assigned to a subject.
type Color string

const (
	ColorPrimary Color = "primary"
	ColorIndigo  Color = "indigo"
	ColorPink    Color = "pink"
	ColorOrange  Color = "orange"
	ColorTeal    Color = "teal"
	ColorRed     Color = "red"
	ColorPurple  Color = "purple"
)

// palette order is load-bearing: the subject hash indexes into it, so the
// same subject must keep landing on the same color.
var palette = [...]Color{
	ColorPrimary,
	ColorIndigo,
	ColorPink,
	ColorOrange,
	ColorTeal,
	ColorRed,
	ColorPurple,
}

// Instructor describes the person teaching a class meeting.
type Instructor struct {
	Name   string
	Avatar string
}

// Event is one class meeting parsed from the schedule feed. Events are
// immutable once parsed and replaced wholesale on re-fetch.
type Event struct {
	ID         string
	Title      string // subject
	Subtitle   string // group label
	Instructor Instructor
	RoomID     string
	StartTime  string // HH:MM wall clock
	EndTime    string
	Color      Color
	Block      string
	Day        string
	Floor      string // derived from RoomID
}
