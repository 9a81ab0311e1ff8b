// Package sqlite implements the repository interfaces on an embedded SQLite
// database (modernc.org/sqlite, a pure Go driver that needs no CGo).
//
// SQLite is the sole shared mutable resource of the whole backend. The two
// uniqueness rules the site depends on (one vote per user and one reaction
// per (user, story) pair) are enforced here by UNIQUE constraints, which the
// database applies atomically. Concurrent duplicate writes therefore need no
// application-level locking: the loser of the race gets a constraint error,
// which this package translates into apperror.ErrConflict.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface declared in the repository package.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight, which matters for a
	// web server where the results stream reads the votes table constantly.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite.
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

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
// The driver returns a typed *sqlite.Error whose extended result code
// distinguishes constraint kinds; 2067 is SQLITE_CONSTRAINT_UNIQUE.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// migrate creates all tables. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup.
func (db *DB) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			github_id     INTEGER UNIQUE,
			email         TEXT NOT NULL DEFAULT '',
			avatar_url    TEXT NOT NULL DEFAULT '',
			is_admin      INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS runners (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			image_url      TEXT NOT NULL DEFAULT '',
			description    TEXT NOT NULL DEFAULT '',
			is_quiz_runner INTEGER NOT NULL DEFAULT 0,
			quiz_order     INTEGER
		)`,
		// user_id is UNIQUE: at most one vote per user, enforced atomically
		// by the database. This is the only concurrency control the vote
		// path has or needs.
		`CREATE TABLE IF NOT EXISTS votes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			runner_id  TEXT NOT NULL REFERENCES runners(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_runner_id ON votes(runner_id)`,
		`CREATE TABLE IF NOT EXISTS memes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title      TEXT NOT NULL DEFAULT '',
			image_url  TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT 'general',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_memes_created_at ON memes(created_at)`,
		`CREATE TABLE IF NOT EXISTS quizzes (
			id                  TEXT PRIMARY KEY,
			title               TEXT NOT NULL,
			has_correct_answers INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id      TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
			text    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			id          TEXT PRIMARY KEY,
			question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			text        TEXT NOT NULL,
			is_correct  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS stories (
			id         TEXT PRIMARY KEY,
			author_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		// One reaction per (user, story) pair.
		`CREATE TABLE IF NOT EXISTS reactions (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			story_id   TEXT NOT NULL REFERENCES stories(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, story_id)
		)`,
		`CREATE TABLE IF NOT EXISTS website_ratings (
			user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			rating  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS timeline_events (
			id          TEXT PRIMARY KEY,
			year        TEXT NOT NULL,
			description TEXT NOT NULL,
			position    INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS timeline_references (
			id          TEXT PRIMARY KEY,
			event_id    TEXT NOT NULL REFERENCES timeline_events(id) ON DELETE CASCADE,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			question    TEXT NOT NULL DEFAULT '',
			answer      TEXT NOT NULL DEFAULT ''
		)`,
		// user_id is nullable: the original schema allows anonymous results.
		`CREATE TABLE IF NOT EXISTS mileage_results (
			id              TEXT PRIMARY KEY,
			user_id         TEXT REFERENCES users(id) ON DELETE CASCADE,
			age             TEXT NOT NULL,
			injury          TEXT NOT NULL,
			desired_mileage INTEGER NOT NULL,
			start_mileage   INTEGER NOT NULL,
			jump            INTEGER NOT NULL,
			weeks           INTEGER NOT NULL,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mileage_user_created ON mileage_results(user_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}
