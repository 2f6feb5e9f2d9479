package memory

import (
	"context"
	"testing"
	"time"
)

func TestSessionRepository_LoadReturnsCopy(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()
	_ = repo.Apply(ctx, "sid", map[string]string{"userRole": "doctor"}, nil)

	vals, _ := repo.Load(ctx, "sid")
	vals["userRole"] = "admin"

	again, _ := repo.Load(ctx, "sid")
	if again["userRole"] != "doctor" {
		t.Fatalf("stored session mutated through Load result: %+v", again)
	}
}

func TestSessionRepository_SessionsAreIsolated(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()
	_ = repo.Apply(ctx, "a", map[string]string{"userRole": "admin", "token": "x"}, nil)
	_ = repo.Apply(ctx, "b", nil, []string{"userRole", "token"})

	a, _ := repo.Load(ctx, "a")
	b, _ := repo.Load(ctx, "b")
	if a["token"] != "x" || len(b) != 0 {
		t.Fatalf("unexpected sessions a=%+v b=%+v", a, b)
	}
}

func TestSessionRepository_RemoveThenSet(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()
	_ = repo.Apply(ctx, "sid", map[string]string{"userRole": "loggedPatient", "token": "t"}, nil)
	_ = repo.Apply(ctx, "sid", map[string]string{"userRole": "patient"}, []string{"token"})

	vals, _ := repo.Load(ctx, "sid")
	if len(vals) != 1 || vals["userRole"] != "patient" {
		t.Fatalf("unexpected values %+v", vals)
	}
}

func TestSessionRepository_ExpiresAfterTTL(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }
	ctx := context.Background()
	_ = repo.Apply(ctx, "old", map[string]string{"userRole": "doctor", "token": "t"}, nil)

	clock = clock.Add(30 * time.Minute)
	if vals, _ := repo.Load(ctx, "old"); vals["token"] != "t" {
		t.Fatalf("session expired early: %+v", vals)
	}

	clock = clock.Add(time.Hour)
	if vals, _ := repo.Load(ctx, "old"); len(vals) != 0 {
		t.Fatalf("expected expired session to read empty, got %+v", vals)
	}

	_ = repo.Apply(ctx, "new", map[string]string{"userRole": "patient"}, nil)
	if repo.Len() != 1 {
		t.Fatalf("expected expired session to be swept, %d left", repo.Len())
	}
}

func TestSessionRepository_WriteRefreshesExpiry(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }
	ctx := context.Background()
	_ = repo.Apply(ctx, "sid", map[string]string{"userRole": "doctor", "token": "t"}, nil)

	clock = clock.Add(50 * time.Minute)
	_ = repo.Apply(ctx, "sid", map[string]string{"userRole": "doctor"}, nil)
	clock = clock.Add(50 * time.Minute)

	if vals, _ := repo.Load(ctx, "sid"); vals["token"] != "t" {
		t.Fatalf("expected refreshed session, got %+v", vals)
	}
}

func TestSessionRepository_ExpiredValuesDoNotResurface(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }
	ctx := context.Background()
	_ = repo.Apply(ctx, "sid", map[string]string{"userRole": "admin", "token": "t"}, nil)

	clock = clock.Add(2 * time.Hour)
	_ = repo.Apply(ctx, "sid", map[string]string{"userRole": "patient"}, nil)

	vals, _ := repo.Load(ctx, "sid")
	if len(vals) != 1 || vals["userRole"] != "patient" {
		t.Fatalf("unexpected values %+v", vals)
	}
}
