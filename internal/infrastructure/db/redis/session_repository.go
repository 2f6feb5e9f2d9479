package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// SessionRepository keeps each session as a hash under session:<sid>.
// Every write slides the key's expiry forward by ttl.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository wraps client. A ttl of zero keeps keys forever.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	vals, err := r.client.HGetAll(ctx, key(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load session: %w", err)
	}
	return vals, nil
}

// Apply sets and removes fields in one MULTI/EXEC so readers never see half a transition.
func (r *SessionRepository) Apply(ctx context.Context, sessionID string, set map[string]string, remove []string) error {
	k := key(sessionID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(remove) > 0 {
			pipe.HDel(ctx, k, remove...)
		}
		if len(set) > 0 {
			pairs := make([]any, 0, 2*len(set))
			for field, v := range set {
				pairs = append(pairs, field, v)
			}
			pipe.HSet(ctx, k, pairs...)
			if r.ttl > 0 {
				pipe.Expire(ctx, k, r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis apply session: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}
