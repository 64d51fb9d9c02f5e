package persistence

import (
	"context"
	"time"
)

// UserRepository stores local user identities.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// ShiftRepository stores assistant shift assignments. DeleteShift returns
// ErrNotFound for absent ids; callers decide whether that matters.
type ShiftRepository interface {
	CreateShift(ctx context.Context, shift Shift) error
	GetShift(ctx context.Context, id string) (Shift, error)
	ListShifts(ctx context.Context) ([]Shift, error)
	ListShiftsByUser(ctx context.Context, userID string) ([]Shift, error)
	DeleteShift(ctx context.Context, id string) error
}

// LogRepository stores per-day operational logs. The (EventID, Date)
// uniqueness invariant is enforced here; UpdateLog preserves the log id.
type LogRepository interface {
	CreateLog(ctx context.Context, log OperationalLog) error
	UpdateLog(ctx context.Context, log OperationalLog) error
	GetLogByEventAndDate(ctx context.Context, eventID, date string) (OperationalLog, error)
	ListLogsByDate(ctx context.Context, date string) ([]OperationalLog, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) error
}
