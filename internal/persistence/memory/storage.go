// Package memory provides a map-backed implementation of the persistence
// boundary, used by tests and anywhere a throwaway store is enough.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

// Storage keeps every collection in process memory behind one lock.
type Storage struct {
	mu       sync.RWMutex
	users    map[string]persistence.User
	shifts   map[string]persistence.Shift
	logs     map[string]persistence.OperationalLog
	sessions map[string]persistence.Session
}

var (
	_ persistence.UserRepository    = (*Storage)(nil)
	_ persistence.ShiftRepository   = (*Storage)(nil)
	_ persistence.LogRepository     = (*Storage)(nil)
	_ persistence.SessionRepository = (*Storage)(nil)
)

// NewStorage returns an empty in-memory store.
func NewStorage() *Storage {
	return &Storage{
		users:    make(map[string]persistence.User),
		shifts:   make(map[string]persistence.Shift),
		logs:     make(map[string]persistence.OperationalLog),
		sessions: make(map[string]persistence.Session),
	}
}

// --- UserRepository ---

func (s *Storage) CreateUser(ctx context.Context, user persistence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return persistence.ErrDuplicate
	}
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return persistence.ErrDuplicate
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

// --- ShiftRepository ---

func (s *Storage) CreateShift(ctx context.Context, shift persistence.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shifts[shift.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.shifts[shift.ID] = shift
	return nil
}

func (s *Storage) GetShift(ctx context.Context, id string) (persistence.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, ok := s.shifts[id]
	if !ok {
		return persistence.Shift{}, persistence.ErrNotFound
	}
	return shift, nil
}

func (s *Storage) ListShifts(ctx context.Context) ([]persistence.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shifts := make([]persistence.Shift, 0, len(s.shifts))
	for _, shift := range s.shifts {
		shifts = append(shifts, shift)
	}
	sortShifts(shifts)
	return shifts, nil
}

func (s *Storage) ListShiftsByUser(ctx context.Context, userID string) ([]persistence.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var shifts []persistence.Shift
	for _, shift := range s.shifts {
		if shift.UserID == userID {
			shifts = append(shifts, shift)
		}
	}
	sortShifts(shifts)
	return shifts, nil
}

func (s *Storage) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shifts[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.shifts, id)
	return nil
}

// --- LogRepository ---

func (s *Storage) CreateLog(ctx context.Context, log persistence.OperationalLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[log.ID]; ok {
		return persistence.ErrDuplicate
	}
	for _, existing := range s.logs {
		if existing.EventID == log.EventID && existing.Date == log.Date {
			return persistence.ErrDuplicate
		}
	}
	s.logs[log.ID] = log
	return nil
}

func (s *Storage) UpdateLog(ctx context.Context, log persistence.OperationalLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[log.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.logs[log.ID] = log
	return nil
}

func (s *Storage) GetLogByEventAndDate(ctx context.Context, eventID, date string) (persistence.OperationalLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, log := range s.logs {
		if log.EventID == eventID && log.Date == date {
			return log, nil
		}
	}
	return persistence.OperationalLog{}, persistence.ErrNotFound
}

func (s *Storage) ListLogsByDate(ctx context.Context, date string) ([]persistence.OperationalLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var logs []persistence.OperationalLog
	for _, log := range s.logs {
		if log.Date == date {
			logs = append(logs, log)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Timestamp.Equal(logs[j].Timestamp) {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].Timestamp.Before(logs[j].Timestamp)
	})
	return logs, nil
}

// --- SessionRepository ---

func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.Token]; ok {
		return persistence.ErrDuplicate
	}
	s.sessions[session.Token] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *Storage) RevokeSession(ctx context.Context, token string, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.sessions[token] = session
	return nil
}

func sortShifts(shifts []persistence.Shift) {
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].CreatedAt.Equal(shifts[j].CreatedAt) {
			return shifts[i].ID < shifts[j].ID
		}
		return shifts[i].CreatedAt.Before(shifts[j].CreatedAt)
	})
}
