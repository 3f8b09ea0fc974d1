package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE comp_cache (
			identity_hash TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating comp_cache table: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return New(db)
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "hash-a", []byte(`[{"source":"ebay"}]`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	payload, ok, err := s.Get(ctx, "hash-a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if string(payload) != `[{"source":"ebay"}]` {
		t.Fatalf("payload = %q", payload)
	}
}

func TestStore_MissForUnknownKey(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestStore_ExpiredEntryIsAMiss(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "hash-b", []byte("stale"), -time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, ok, err := s.Get(ctx, "hash-b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expired entry must be a miss")
	}
}

func TestStore_SetReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "hash-c", []byte("old"), time.Hour); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	if err := s.Set(ctx, "hash-c", []byte("new"), time.Hour); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	payload, ok, err := s.Get(ctx, "hash-c")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(payload) != "new" {
		t.Fatalf("payload = %q, want replacement", payload)
	}
}

func TestStore_DeleteAndPurge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "keep", []byte("x"), time.Hour); err != nil {
		t.Fatalf("Set keep: %v", err)
	}
	if err := s.Set(ctx, "gone", []byte("y"), -time.Minute); err != nil {
		t.Fatalf("Set gone: %v", err)
	}

	if err := s.Delete(ctx, "absent"); err != nil {
		t.Fatalf("Delete of absent key must not error: %v", err)
	}

	n, err := s.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("purged %d rows, want 1", n)
	}

	if _, ok, _ := s.Get(ctx, "keep"); !ok {
		t.Fatal("live entry must survive the purge")
	}
}
