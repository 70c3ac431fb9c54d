package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

// AuthService implements registration, session-based login/logout, and the
// authorization gate. Login and Logout are the only writers of session state,
// which keeps the single-active-session invariant enforceable in one place.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	audit      ports.AuditSink
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, audit ports.AuditSink, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		audit:      audit,
		sessionTTL: sessionTTL,
		log:        log,
		now:        time.Now,
	}
}

// Register creates a new account with the given role.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and creates exactly one new session. The
// session's role is copied from the user at this instant; a later role change
// takes effect on the next login only.
func (s *AuthService) Login(ctx context.Context, presentedToken, username, password, requiredRole string) (*domain.Session, error) {
	if presentedToken != "" {
		live, err := s.sessions.Get(ctx, presentedToken)
		if err != nil {
			return nil, err
		}
		if live != nil {
			return nil, domain.ErrAlreadyAuthenticated
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil || user == nil {
		// Unknown username reports the same failure as a wrong password.
		s.emit(username, domain.AuditLoginFailed, "unknown user")
		return nil, domain.ErrInvalidCredentials
	}

	if !CheckPassword(password, user.PasswordHash) {
		s.emit(username, domain.AuditLoginFailed, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	if user.Role != requiredRole {
		s.emit(username, domain.AuditLoginFailed, "role mismatch")
		return nil, domain.ErrRoleMismatch
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	s.emit(username, domain.AuditLogin, "")
	s.log.Info().Str("username", username).Str("role", user.Role).Msg("login")
	return session, nil
}

// Logout invalidates the session behind token. Repeating the call reports
// ErrNotAuthenticated again, never a crash.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrNotAuthenticated
	}

	if err := s.sessions.Remove(ctx, token); err != nil {
		return err
	}

	s.emit(session.UserID, domain.AuditLogout, "")
	s.log.Info().Str("user_id", session.UserID).Msg("logout")
	return nil
}

// Resolve returns the live session behind token, or nil. No side effects.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.Get(ctx, token)
}

// Authorize is a point-in-time, binary decision: no retries, no partial
// results. A forged or malformed token is indistinguishable from an absent
// one.
func (s *AuthService) Authorize(ctx context.Context, token, requiredRole string) (ports.Decision, *domain.Session, error) {
	session, err := s.Resolve(ctx, token)
	if err != nil {
		return ports.DecisionUnauthenticated, nil, err
	}
	if session == nil {
		return ports.DecisionUnauthenticated, nil, nil
	}
	if session.Role != requiredRole {
		s.emit(session.UserID, domain.AuditAccessDenied, "required role "+requiredRole)
		return ports.DecisionDeny, nil, nil
	}
	return ports.DecisionAllow, session, nil
}

func (s *AuthService) emit(actor, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Actor:     actor,
		Action:    action,
		Detail:    detail,
		Timestamp: s.now().UTC(),
	})
}
