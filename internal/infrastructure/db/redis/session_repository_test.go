package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionRepository(client, ttl), mr
}

func TestSessionRepository_ApplyAndLoad(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := context.Background()

	if err := repo.Apply(ctx, "sid", map[string]string{"userRole": "admin", "token": "abc"}, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	vals, err := repo.Load(ctx, "sid")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if vals["userRole"] != "admin" || vals["token"] != "abc" {
		t.Fatalf("unexpected values %+v", vals)
	}
	if ttl := mr.TTL("session:sid"); ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", ttl)
	}
}

func TestSessionRepository_RemoveKeepsOtherFields(t *testing.T) {
	repo, _ := newTestRepo(t, 0)
	ctx := context.Background()

	_ = repo.Apply(ctx, "sid", map[string]string{"userRole": "loggedPatient", "token": "t"}, nil)
	if err := repo.Apply(ctx, "sid", map[string]string{"userRole": "patient"}, []string{"token"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	vals, _ := repo.Load(ctx, "sid")
	if vals["userRole"] != "patient" {
		t.Fatalf("expected patient, got %+v", vals)
	}
	if _, ok := vals["token"]; ok {
		t.Fatalf("expected token removed, got %+v", vals)
	}
}

func TestSessionRepository_ClearIsIdempotent(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Apply(ctx, "sid", nil, []string{"userRole", "token"}); err != nil {
			t.Fatalf("clear %d: %v", i, err)
		}
	}
	vals, err := repo.Load(ctx, "sid")
	if err != nil || len(vals) != 0 {
		t.Fatalf("expected empty session, got %+v (%v)", vals, err)
	}
	if mr.Exists("session:sid") {
		t.Fatalf("expected key to be gone")
	}
}

func TestSessionRepository_LoadFailsWhenServerDown(t *testing.T) {
	repo, mr := newTestRepo(t, 0)
	mr.Close()

	if _, err := repo.Load(context.Background(), "sid"); err == nil {
		t.Fatalf("expected error")
	}
}
