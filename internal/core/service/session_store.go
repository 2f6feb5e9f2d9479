package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
)

// SessionStore is the single owner of per-tab session state. Reads go straight
// to the repository so every mutation is visible to the next read.
//
// View generations live in process memory: every mutation stamps the session
// with a value drawn from one monotonic counter, so a generation is never
// reused for the same session. Clearing a session that is already empty
// changes nothing and is not stamped. Entries idle for longer than ttl are
// dropped, the same horizon after which the repository forgets the session.
type SessionStore struct {
	repo ports.SessionRepository
	log  zerolog.Logger
	now  func() time.Time
	ttl  time.Duration

	counter   atomic.Uint64
	mu        sync.RWMutex
	gens      map[string]stamp
	lastPrune time.Time
}

type stamp struct {
	gen domain.Generation
	at  time.Time
}

// NewSessionStore returns a SessionStore backed by repo. A zero ttl keeps
// generations for the life of the process.
func NewSessionStore(repo ports.SessionRepository, ttl time.Duration, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		repo: repo,
		log:  log,
		now:  time.Now,
		ttl:  ttl,
		gens: make(map[string]stamp),
	}
}

// Get returns the session. An expired JWT is reported as an absent token;
// the stored value is left alone and the Router decides what to do.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	if sessionID == "" {
		return domain.Session{}, domain.ErrMissingSessionID
	}
	vals, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	sess := domain.Session{
		Role:  domain.ParseRole(vals[domain.KeyRole]),
		Token: vals[domain.KeyToken],
	}
	if sess.Token != "" && tokenExpired(sess.Token, s.now()) {
		s.log.Debug().Str("role", sess.Role.String()).Msg("stored token expired")
		sess.Token = ""
	}
	return sess, nil
}

// Role returns the current role, anonymous when unset.
func (s *SessionStore) Role(ctx context.Context, sessionID string) (domain.Role, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.RoleAnonymous, err
	}
	return sess.Role, nil
}

// Token returns the current token; "" means none.
func (s *SessionStore) Token(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// SetSession writes role and token together. An empty token removes the
// stored one. Callers are responsible for not pairing a privileged role with
// an empty token; the Router is the component that guarantees it.
func (s *SessionStore) SetSession(ctx context.Context, sessionID string, role domain.Role, token string) error {
	set := map[string]string{domain.KeyRole: role.String()}
	var remove []string
	if token != "" {
		set[domain.KeyToken] = token
	} else {
		remove = []string{domain.KeyToken}
	}
	return s.apply(ctx, sessionID, set, remove)
}

// ClearRole removes the role and leaves any stored token in place.
func (s *SessionStore) ClearRole(ctx context.Context, sessionID string) error {
	return s.apply(ctx, sessionID, nil, []string{domain.KeyRole})
}

// Clear resets the session to anonymous with no token.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrMissingSessionID
	}
	vals, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if len(vals) == 0 && !s.tracked(sessionID) {
		return nil
	}
	return s.apply(ctx, sessionID, nil, []string{domain.KeyRole, domain.KeyToken})
}

// Snapshot returns the session's current view generation.
func (s *SessionStore) Snapshot(sessionID string) domain.Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[sessionID].gen
}

// Stale reports whether the session was mutated after gen was taken.
func (s *SessionStore) Stale(sessionID string, gen domain.Generation) bool {
	return s.Snapshot(sessionID) != gen
}

func (s *SessionStore) apply(ctx context.Context, sessionID string, set map[string]string, remove []string) error {
	if sessionID == "" {
		return domain.ErrMissingSessionID
	}
	if err := s.repo.Apply(ctx, sessionID, set, remove); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	now := s.now()
	s.mu.Lock()
	s.gens[sessionID] = stamp{gen: domain.Generation(s.counter.Add(1)), at: now}
	s.pruneLocked(now)
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) tracked(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.gens[sessionID]
	return ok
}

// pruneLocked drops generations idle for longer than ttl, at most once per ttl.
func (s *SessionStore) pruneLocked(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastPrune) < s.ttl {
		return
	}
	for sid, st := range s.gens {
		if now.Sub(st.at) > s.ttl {
			delete(s.gens, sid)
		}
	}
	s.lastPrune = now
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens and JWTs without exp never expire locally; the signature is
// not checked because the portal does not hold the backend's key.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
