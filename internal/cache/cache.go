// Package cache is the durable key-value store for memoizing expensive
// competitor lookups, keyed by identity hash. The pricing core never touches
// it; callers consult it before hitting the external comp provider.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store is a TTL cache backed by SQLite. An expired row is a miss on read;
// Purge removes expired rows eagerly for housekeeping.
type Store struct {
	db *sql.DB
}

// New wraps an opened database. The comp_cache table is created by the
// goose migrations in migrations/.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the cached payload for an identity hash, reporting a miss for
// absent and expired entries alike.
func (s *Store) Get(ctx context.Context, identityHash string) ([]byte, bool, error) {
	var payload []byte
	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT payload, expires_at FROM comp_cache WHERE identity_hash = ?
	`, identityHash).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query comp cache: %w", err)
	}

	if time.Now().After(expiresAt) {
		return nil, false, nil
	}
	return payload, true, nil
}

// Set stores a payload under an identity hash with a time-to-live,
// replacing any previous entry.
func (s *Store) Set(ctx context.Context, identityHash string, payload []byte, ttl time.Duration) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comp_cache (identity_hash, payload, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(identity_hash) DO UPDATE SET
			payload = excluded.payload,
			expires_at = excluded.expires_at
	`, identityHash, payload, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("upsert comp cache entry: %w", err)
	}
	return nil
}

// Delete removes an entry. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, identityHash string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM comp_cache WHERE identity_hash = ?`, identityHash); err != nil {
		return fmt.Errorf("delete comp cache entry: %w", err)
	}
	return nil
}

// Purge deletes every expired entry and reports how many were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comp_cache WHERE expires_at < ?`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("purge comp cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge comp cache rows affected: %w", err)
	}
	return n, nil
}
