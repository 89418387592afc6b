// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// We use modernc.org/sqlite (a pure Go translation of SQLite) rather than
// the CGo driver, so the server cross-compiles without a C toolchain. The
// database is a single file owned by the server process; WAL mode lets
// concurrent HTTP requests read while a lookup is writing.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// Use ":memory:" in tests for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path surfaces here, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads during writes — needed for a web server.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// email_actions references users and lawmakers.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE ... IF NOT EXISTS keeps this safe to
// run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id                   TEXT PRIMARY KEY,
			email                TEXT NOT NULL UNIQUE,
			zip_code             TEXT NOT NULL,
			role                 TEXT NOT NULL,
			state                TEXT NOT NULL DEFAULT '',
			name                 TEXT NOT NULL DEFAULT '',
			phone                TEXT NOT NULL DEFAULT '',
			business_name        TEXT NOT NULL DEFAULT '',
			story_opt_in         INTEGER NOT NULL DEFAULT 0,
			weekly_digest_opt_in INTEGER NOT NULL DEFAULT 0,
			created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// external_id UNIQUE is the backstop against duplicate inserts when two
	// lookups first-sight the same lawmaker concurrently.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS lawmakers (
			id                    TEXT PRIMARY KEY,
			external_id           TEXT NOT NULL UNIQUE,
			name                  TEXT NOT NULL,
			chamber               TEXT NOT NULL CHECK (chamber IN ('senate', 'house')),
			state                 TEXT NOT NULL,
			district              TEXT NOT NULL DEFAULT '',
			party                 TEXT NOT NULL DEFAULT '',
			photo_url             TEXT NOT NULL DEFAULT '',
			email                 TEXT NOT NULL DEFAULT '',
			phone                 TEXT NOT NULL DEFAULT '',
			contact_form_url      TEXT NOT NULL DEFAULT '',
			office_addresses      TEXT NOT NULL DEFAULT '',
			hemp_stance           TEXT NOT NULL DEFAULT 'unknown',
			alcohol_funding_total REAL NOT NULL DEFAULT 0,
			alcohol_funding_cycle TEXT NOT NULL DEFAULT '',
			key_quote             TEXT NOT NULL DEFAULT '',
			quote_source_url      TEXT NOT NULL DEFAULT '',
			featured              INTEGER NOT NULL DEFAULT 0,
			last_synced_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_lawmakers_featured ON lawmakers(featured);
		CREATE INDEX IF NOT EXISTS idx_lawmakers_state ON lawmakers(state);
	`)
	if err != nil {
		return fmt.Errorf("creating lawmakers table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS email_actions (
			id                  TEXT PRIMARY KEY,
			user_id             TEXT NOT NULL REFERENCES users(id),
			lawmaker_id         TEXT NOT NULL REFERENCES lawmakers(id),
			email_subject       TEXT NOT NULL,
			email_body          TEXT NOT NULL,
			status              TEXT NOT NULL CHECK (status IN ('sent', 'failed', 'bounced')),
			provider_message_id TEXT NOT NULL DEFAULT '',
			sent_at             DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_email_actions_user_id ON email_actions(user_id);
		CREATE INDEX IF NOT EXISTS idx_email_actions_lawmaker_id ON email_actions(lawmaker_id);
	`)
	if err != nil {
		return fmt.Errorf("creating email_actions table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE VIEW IF NOT EXISTS campaign_stats AS
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM email_actions) AS total_emails;
	`)
	if err != nil {
		return fmt.Errorf("creating campaign_stats view: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces these as plain errors carrying SQLite's
// canonical "UNIQUE constraint failed: table.column" text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
