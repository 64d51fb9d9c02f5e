package persistence

import "time"

// User is a local identity created on first login by username.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Shift is a recurring assistant assignment over one block, floor and day.
// Temporal shifts are one-off exceptions explicitly allowed to overlap
// standing assignments.
type Shift struct {
	ID        string
	UserID    string
	Block     string
	Floor     int
	Day       string
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Temporal  bool
	CreatedAt time.Time
}

// Status is the observed operational state of a room during a class.
type Status string

const (
	StatusNone  Status = "NONE"
	StatusInUse Status = "IN_USE"
	StatusFree  Status = "FREE"
)

// KnownStatus reports whether the value is one of the defined states.
func KnownStatus(status Status) bool {
	switch status {
	case StatusNone, StatusInUse, StatusFree:
		return true
	}
	return false
}

// OperationalLog records the observed status of one event on one calendar
// date. At most one log exists per (EventID, Date) pair.
type OperationalLog struct {
	ID        string
	EventID   string
	Date      string // YYYY-MM-DD, device-local
	Status    Status
	UpdatedBy string
	Timestamp time.Time
}

// Session is the current-session record persisted for a logged-in user.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	RevokedAt *time.Time
}
