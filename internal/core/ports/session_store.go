package ports

import (
	"context"

	"github.com/hospitalcms/portal/internal/core/domain"
)

// SessionStore owns the session state of every browser tab.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (domain.Session, error)
	Role(ctx context.Context, sessionID string) (domain.Role, error)
	Token(ctx context.Context, sessionID string) (string, error)
	SetSession(ctx context.Context, sessionID string, role domain.Role, token string) error
	ClearRole(ctx context.Context, sessionID string) error
	Clear(ctx context.Context, sessionID string) error

	// Snapshot returns the current view generation; Stale reports whether the
	// session was mutated after that snapshot was taken.
	Snapshot(sessionID string) domain.Generation
	Stale(sessionID string, gen domain.Generation) bool
}

// RoleRouter turns the session into page layouts and performs role transitions.
type RoleRouter interface {
	Resolve(ctx context.Context, sessionID, path string) (domain.Layout, error)
	SelectRole(ctx context.Context, sessionID string, next domain.Role, token string) (string, error)
	Logout(ctx context.Context, sessionID string) (string, error)
	LogoutPatient(ctx context.Context, sessionID string) (string, error)
	Home(ctx context.Context, sessionID string) (string, error)
}
