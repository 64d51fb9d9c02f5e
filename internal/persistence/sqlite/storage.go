// Package sqlite implements the persistence boundary on a local SQLite
// database, the durable stand-in for the original deployment's browser
// storage keys.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
	_ "modernc.org/sqlite"
)

// Storage owns the database handle and implements every repository
// interface declared by the persistence package.
type Storage struct {
	db *sql.DB
}

var (
	_ persistence.UserRepository    = (*Storage)(nil)
	_ persistence.ShiftRepository   = (*Storage)(nil)
	_ persistence.LogRepository     = (*Storage)(nil)
	_ persistence.SessionRepository = (*Storage)(nil)
)

// Open connects to the database identified by dsn.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single logical writer is assumed; one connection sidesteps SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return &Storage{db: db}, nil
}

// Close releases the database handle.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate applies the schema idempotently.
func (s *Storage) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shifts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			block TEXT NOT NULL,
			floor INTEGER NOT NULL,
			day TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			temporal INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS operational_logs (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL,
			date TEXT NOT NULL,
			status TEXT NOT NULL,
			updated_by TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			UNIQUE (event_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			created_at TEXT NOT NULL,
			revoked_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shifts_user ON shifts(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_date ON operational_logs(date)`,
	}

	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("sqlite: migrate: %w", err)
		}
	}
	return nil
}

// --- UserRepository ---

func (s *Storage) CreateUser(ctx context.Context, user persistence.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, created_at) VALUES (?, ?, ?)`,
		user.ID, user.Username, user.CreatedAt.UTC().Format(time.RFC3339),
	)
	return mapWriteError(err)
}

func (s *Storage) GetUser(ctx context.Context, id string) (persistence.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	// Username lookup is intentionally case-sensitive: "Maria" and "maria"
	// are distinct local identities.
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users WHERE username = ? COLLATE BINARY`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (persistence.User, error) {
	var user persistence.User
	var createdAt string
	if err := row.Scan(&user.ID, &user.Username, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, fmt.Errorf("sqlite: scan user: %w", err)
	}
	user.CreatedAt = parseTimestamp(createdAt)
	return user, nil
}

// --- ShiftRepository ---

func (s *Storage) CreateShift(ctx context.Context, shift persistence.Shift) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shifts (id, user_id, block, floor, day, start_time, end_time, temporal, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shift.ID, shift.UserID, shift.Block, shift.Floor, shift.Day,
		shift.StartTime, shift.EndTime, boolToInt(shift.Temporal),
		shift.CreatedAt.UTC().Format(time.RFC3339),
	)
	return mapWriteError(err)
}

func (s *Storage) GetShift(ctx context.Context, id string) (persistence.Shift, error) {
	row := s.db.QueryRowContext(ctx, selectShift+` WHERE id = ?`, id)
	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Shift{}, persistence.ErrNotFound
		}
		return persistence.Shift{}, err
	}
	return shift, nil
}

func (s *Storage) ListShifts(ctx context.Context) ([]persistence.Shift, error) {
	return s.queryShifts(ctx, selectShift+` ORDER BY created_at, id`)
}

func (s *Storage) ListShiftsByUser(ctx context.Context, userID string) ([]persistence.Shift, error) {
	return s.queryShifts(ctx, selectShift+` WHERE user_id = ? ORDER BY created_at, id`, userID)
}

func (s *Storage) DeleteShift(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete shift: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete shift: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

const selectShift = `SELECT id, user_id, block, floor, day, start_time, end_time, temporal, created_at FROM shifts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (persistence.Shift, error) {
	var shift persistence.Shift
	var temporal int
	var createdAt string
	if err := row.Scan(&shift.ID, &shift.UserID, &shift.Block, &shift.Floor,
		&shift.Day, &shift.StartTime, &shift.EndTime, &temporal, &createdAt); err != nil {
		return persistence.Shift{}, err
	}
	shift.Temporal = temporal != 0
	shift.CreatedAt = parseTimestamp(createdAt)
	return shift, nil
}

func (s *Storage) queryShifts(ctx context.Context, query string, args ...any) ([]persistence.Shift, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []persistence.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list shifts: %w", err)
	}
	return shifts, nil
}

// --- LogRepository ---

func (s *Storage) CreateLog(ctx context.Context, log persistence.OperationalLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO operational_logs (id, event_id, date, status, updated_by, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		log.ID, log.EventID, log.Date, string(log.Status), log.UpdatedBy,
		log.Timestamp.UTC().Format(time.RFC3339),
	)
	return mapWriteError(err)
}

func (s *Storage) UpdateLog(ctx context.Context, log persistence.OperationalLog) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE operational_logs SET status = ?, updated_by = ?, timestamp = ? WHERE id = ?`,
		string(log.Status), log.UpdatedBy, log.Timestamp.UTC().Format(time.RFC3339), log.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update log: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: update log: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

func (s *Storage) GetLogByEventAndDate(ctx context.Context, eventID, date string) (persistence.OperationalLog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, event_id, date, status, updated_by, timestamp
		 FROM operational_logs WHERE event_id = ? AND date = ?`, eventID, date)
	log, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.OperationalLog{}, persistence.ErrNotFound
		}
		return persistence.OperationalLog{}, err
	}
	return log, nil
}

func (s *Storage) ListLogsByDate(ctx context.Context, date string) ([]persistence.OperationalLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, date, status, updated_by, timestamp
		 FROM operational_logs WHERE date = ? ORDER BY timestamp, id`, date)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list logs: %w", err)
	}
	defer rows.Close()

	var logs []persistence.OperationalLog
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list logs: %w", err)
	}
	return logs, nil
}

func scanLog(row rowScanner) (persistence.OperationalLog, error) {
	var log persistence.OperationalLog
	var status, timestamp string
	if err := row.Scan(&log.ID, &log.EventID, &log.Date, &status, &log.UpdatedBy, &timestamp); err != nil {
		return persistence.OperationalLog{}, err
	}
	log.Status = persistence.Status(status)
	log.Timestamp = parseTimestamp(timestamp)
	return log, nil
}

// --- SessionRepository ---

func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, created_at, revoked_at) VALUES (?, ?, ?, NULL)`,
		session.Token, session.UserID, session.CreatedAt.UTC().Format(time.RFC3339),
	)
	return mapWriteError(err)
}

func (s *Storage) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT token, user_id, created_at, revoked_at FROM sessions WHERE token = ?`, token)

	var session persistence.Session
	var createdAt string
	var revokedAt sql.NullString
	if err := row.Scan(&session.Token, &session.UserID, &createdAt, &revokedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Session{}, persistence.ErrNotFound
		}
		return persistence.Session{}, fmt.Errorf("sqlite: scan session: %w", err)
	}
	session.CreatedAt = parseTimestamp(createdAt)
	if revokedAt.Valid {
		revoked := parseTimestamp(revokedAt.String)
		session.RevokedAt = &revoked
	}
	return session, nil
}

func (s *Storage) RevokeSession(ctx context.Context, token string, revokedAt time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE token = ? AND revoked_at IS NULL`,
		revokedAt.UTC().Format(time.RFC3339), token,
	)
	if err != nil {
		return fmt.Errorf("sqlite: revoke session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: revoke session: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// --- helpers ---

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return persistence.ErrDuplicate
	}
	return fmt.Errorf("sqlite: %w", err)
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
