// Package migrations applies the goose SQL migrations that hold the comp
// cache schema. The server runs them on every start; applying an
// already-migrated database is a no-op.
package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// goose has no dedicated dialect name for modernc.org/sqlite; sqlite3 covers
// both drivers.
const sqliteDialect = "sqlite3"

// Up brings the comp cache schema up to date by applying every pending
// migration in migrationsDir in order.
func Up(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("apply comp cache migrations: %w", err)
	}

	return nil
}
