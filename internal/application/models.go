package application

import (
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

// Principal identifies the acting user resolved from a session.
type Principal struct {
	UserID string
}

// User is the view copy of a local identity.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Session is the view copy of an open session.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

// Shift is the view copy of an assistant shift assignment.
type Shift struct {
	ID        string
	UserID    string
	Block     string
	Floor     int
	Day       string
	StartTime string
	EndTime   string
	Temporal  bool
	CreatedAt time.Time
}

// ShiftInput is the validated constructor input for a new shift. Incomplete
// input is rejected before it ever reaches the collision check.
type ShiftInput struct {
	Block     string
	Floor     int
	Day       string
	StartTime string
	EndTime   string
	Temporal  bool
}

// OperationalLog is the view copy of a per-day status record.
type OperationalLog struct {
	ID        string
	EventID   string
	Date      string
	Status    persistence.Status
	UpdatedBy string
	Timestamp time.Time
}

func toUser(user persistence.User) User {
	return User{ID: user.ID, Username: user.Username, CreatedAt: user.CreatedAt}
}

func toShift(shift persistence.Shift) Shift {
	return Shift{
		ID:        shift.ID,
		UserID:    shift.UserID,
		Block:     shift.Block,
		Floor:     shift.Floor,
		Day:       shift.Day,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		Temporal:  shift.Temporal,
		CreatedAt: shift.CreatedAt,
	}
}

func toShifts(shifts []persistence.Shift) []Shift {
	if len(shifts) == 0 {
		return nil
	}
	out := make([]Shift, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, toShift(shift))
	}
	return out
}

func toLog(log persistence.OperationalLog) OperationalLog {
	return OperationalLog{
		ID:        log.ID,
		EventID:   log.EventID,
		Date:      log.Date,
		Status:    log.Status,
		UpdatedBy: log.UpdatedBy,
		Timestamp: log.Timestamp,
	}
}

func toLogs(logs []persistence.OperationalLog) []OperationalLog {
	if len(logs) == 0 {
		return nil
	}
	out := make([]OperationalLog, 0, len(logs))
	for _, log := range logs {
		out = append(out, toLog(log))
	}
	return out
}
