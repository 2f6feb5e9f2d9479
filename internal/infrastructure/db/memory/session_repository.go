// Package memory holds the in-process session repository used for a single
// portal instance and in tests.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	vals    map[string]string
	touched time.Time
}

// SessionRepository keeps sessions in a map. A session not written for longer
// than ttl reads as empty and is dropped by the next sweep; a zero ttl keeps
// sessions until they are cleared.
type SessionRepository struct {
	mu        sync.RWMutex
	sessions  map[string]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Load returns a copy of the session's values.
func (r *SessionRepository) Load(_ context.Context, sessionID string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sessionID]
	if !ok || r.expired(e, r.now()) {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(e.vals))
	for k, v := range e.vals {
		out[k] = v
	}
	return out, nil
}

// Apply writes set and removes the listed keys, then refreshes the session's
// expiry. A session left without values is deleted.
func (r *SessionRepository) Apply(_ context.Context, sessionID string, set map[string]string, remove []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepLocked(now)

	e, ok := r.sessions[sessionID]
	if !ok || r.expired(e, now) {
		e = entry{vals: make(map[string]string)}
	}
	for _, k := range remove {
		delete(e.vals, k)
	}
	for k, v := range set {
		e.vals[k] = v
	}
	if len(e.vals) == 0 {
		delete(r.sessions, sessionID)
		return nil
	}
	e.touched = now
	r.sessions[sessionID] = e
	return nil
}

// Len returns the number of sessions held, expired ones included until swept.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Ping always succeeds.
func (r *SessionRepository) Ping(context.Context) error { return nil }

func (r *SessionRepository) expired(e entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.touched) > r.ttl
}

// sweepLocked drops expired sessions, at most once per ttl.
func (r *SessionRepository) sweepLocked(now time.Time) {
	if r.ttl <= 0 || now.Sub(r.lastSweep) < r.ttl {
		return
	}
	for sid, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, sid)
		}
	}
	r.lastSweep = now
}
