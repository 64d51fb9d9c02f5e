package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

// UserRepository captures the persistence interactions needed for login.
type UserRepository interface {
	CreateUser(ctx context.Context, user persistence.User) error
	GetUser(ctx context.Context, id string) (persistence.User, error)
	GetUserByUsername(ctx context.Context, username string) (persistence.User, error)
}

// SessionRepository stores the current-session records.
type SessionRepository interface {
	CreateSession(ctx context.Context, session persistence.Session) error
	GetSession(ctx context.Context, token string) (persistence.Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) error
}

// AuthService handles username-based login and session lifecycle. Usernames
// are unvalidated local identities: an unknown name creates a user, a known
// name (case-sensitive exact match) reuses it. There is no credential check.
type AuthService struct {
	users          UserRepository
	sessions       SessionRepository
	idGenerator    func() string
	tokenGenerator func() string
	now            func() time.Time
	logger         *slog.Logger
}

// NewAuthService wires dependencies for login and session validation.
func NewAuthService(users UserRepository, sessions SessionRepository, idGenerator, tokenGenerator func() string, now func() time.Time, logger *slog.Logger) *AuthService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if tokenGenerator == nil {
		tokenGenerator = idGenerator
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:          users,
		sessions:       sessions,
		idGenerator:    idGenerator,
		tokenGenerator: tokenGenerator,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

// LoginResult carries the resolved user and the freshly opened session.
type LoginResult struct {
	User    User
	Session Session
}

// Login resolves or creates the user for the given username and opens a
// session for it.
func (s *AuthService) Login(ctx context.Context, username string) (LoginResult, error) {
	if s == nil || s.users == nil || s.sessions == nil {
		return LoginResult{}, fmt.Errorf("AuthService is not configured")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		vErr := &ValidationError{}
		vErr.add("username", "username is required")
		return LoginResult{}, vErr
	}

	logger := serviceLogger(ctx, s.logger, "auth", "login")

	user, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
	case errors.Is(err, persistence.ErrNotFound):
		user = persistence.User{
			ID:        s.idGenerator(),
			Username:  username,
			CreatedAt: s.now(),
		}
		if createErr := s.users.CreateUser(ctx, user); createErr != nil {
			return LoginResult{}, createErr
		}
		logger.InfoContext(ctx, "user created", "user_id", user.ID)
	default:
		return LoginResult{}, err
	}

	session := persistence.Session{
		Token:     s.tokenGenerator(),
		UserID:    user.ID,
		CreatedAt: s.now(),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return LoginResult{}, err
	}

	logger.InfoContext(ctx, "session opened", "user_id", user.ID)
	return LoginResult{
		User:    toUser(user),
		Session: Session{Token: session.Token, UserID: session.UserID, CreatedAt: session.CreatedAt},
	}, nil
}

// Logout revokes the session for the given token. Revoking an absent or
// already revoked session is a silent no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s == nil || s.sessions == nil {
		return fmt.Errorf("AuthService is not configured")
	}
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := s.sessions.RevokeSession(ctx, token, s.now()); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// ValidateSession resolves the principal behind a session token.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (Principal, error) {
	if s == nil || s.sessions == nil {
		return Principal{}, fmt.Errorf("AuthService is not configured")
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, err
	}
	if session.RevokedAt != nil {
		return Principal{}, ErrUnauthorized
	}
	return Principal{UserID: session.UserID}, nil
}

// CurrentUser resolves the user behind a session token.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (User, error) {
	principal, err := s.ValidateSession(ctx, token)
	if err != nil {
		return User{}, err
	}
	user, err := s.users.GetUser(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return User{}, ErrUnauthorized
		}
		return User{}, err
	}
	return toUser(user), nil
}
