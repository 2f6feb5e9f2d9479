package ports

import "context"

// SessionRepository persists the per-tab key/value session state.
// A session that was never written loads as an empty map.
type SessionRepository interface {
	Load(ctx context.Context, sessionID string) (map[string]string, error)
	// Apply sets and removes keys in one atomic step.
	Apply(ctx context.Context, sessionID string, set map[string]string, remove []string) error
}
