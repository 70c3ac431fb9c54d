package ports

import (
	"context"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

// Decision is the outcome of an authorization check. Unauthenticated means
// "who are you" (no resolvable session); Deny means "I know who you are and
// you may not do this". The two must never be conflated.
type Decision int

const (
	DecisionUnauthenticated Decision = iota
	DecisionDeny
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDeny:
		return "deny"
	default:
		return "unauthenticated"
	}
}

// AuthService establishes and tears down identity, and gates protected
// operations. Login and Logout are the only writers of session state.
type AuthService interface {
	// Register creates a new account with the given role.
	Register(ctx context.Context, username, password, role string) (*domain.User, error)

	// Login verifies credentials against the user directory and creates a new
	// session whose role is snapshotted from the user at this instant.
	// presentedToken is the session token the client already holds, if any; a
	// live presented session fails the call with ErrAlreadyAuthenticated.
	Login(ctx context.Context, presentedToken, username, password, requiredRole string) (*domain.Session, error)

	// Logout invalidates the session behind token. An unresolvable token
	// fails with ErrNotAuthenticated; repeating the call fails the same way.
	Logout(ctx context.Context, token string) error

	// Resolve is a pure lookup: the live session behind token, or nil.
	Resolve(ctx context.Context, token string) (*domain.Session, error)

	// Authorize decides whether the session behind token may perform an
	// operation requiring requiredRole. The resolved session is returned on
	// DecisionAllow so the caller can scope work to the acting user.
	Authorize(ctx context.Context, token, requiredRole string) (Decision, *domain.Session, error)
}
