package migrations

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestUp_CreatesCompCacheSchema(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Up(db, "../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// The migrated schema must accept a cache row as the store writes it.
	_, err = db.Exec(`
		INSERT INTO comp_cache (identity_hash, payload, expires_at)
		VALUES (?, ?, ?)
	`, "abc123", `[]`, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("failed inserting into migrated comp_cache table: %v", err)
	}
}

func TestUp_IsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Up(db, "../../migrations"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Up(db, "../../migrations"); err != nil {
		t.Fatalf("second run must be a no-op, got: %v", err)
	}
}
