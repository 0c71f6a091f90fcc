package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Storage wraps the SQLite database handle shared by every repository.
type Storage struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at the given DSN and enables foreign
// key enforcement. An empty DSN selects an in-memory database, which is what
// the tests use.
func Open(dsn string) (*Storage, error) {
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", dsn, err)
	}

	// modernc's driver is single-writer; a bigger pool only produces
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite: storage not opened")
	}
	return s.db.PingContext(ctx)
}

// migrations is the ordered schema history. Entries are append-only; applied
// versions are tracked in schema_migrations and never rerun.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK (end_date >= start_date)
	)`,
	`CREATE TABLE IF NOT EXISTS event_days (
		id         TEXT PRIMARY KEY,
		event_id   TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (event_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		id           TEXT PRIMARY KEY,
		event_day_id TEXT NOT NULL REFERENCES event_days(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		capacity     INTEGER,
		sort_order   INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		UNIQUE (event_day_id, name),
		CHECK (capacity IS NULL OR capacity > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id            TEXT PRIMARY KEY,
		venue_id      TEXT NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		session_type  TEXT NOT NULL,
		start_minutes INTEGER NOT NULL,
		end_minutes   INTEGER NOT NULL,
		is_break      INTEGER NOT NULL DEFAULT 0,
		sponsor_id    TEXT,
		sort_order    INTEGER NOT NULL DEFAULT 1,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		CHECK (end_minutes > start_minutes)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_venue ON sessions(venue_id)`,
	`CREATE TABLE IF NOT EXISTS session_categories (
		session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL,
		PRIMARY KEY (session_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		id           TEXT PRIMARY KEY,
		full_name    TEXT NOT NULL,
		email        TEXT UNIQUE,
		can_speak    INTEGER NOT NULL DEFAULT 1,
		can_moderate INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_moderators (
		session_id     TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		participant_id TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
		PRIMARY KEY (session_id, participant_id)
	)`,
	`CREATE TABLE IF NOT EXISTS presentations (
		id                TEXT PRIMARY KEY,
		session_id        TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		title             TEXT NOT NULL,
		presentation_type TEXT NOT NULL DEFAULT '',
		start_minutes     INTEGER,
		end_minutes       INTEGER,
		duration_minutes  INTEGER NOT NULL,
		sort_order        INTEGER NOT NULL DEFAULT 1,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		CHECK ((start_minutes IS NULL) = (end_minutes IS NULL)),
		CHECK (start_minutes IS NULL OR end_minutes > start_minutes)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_presentations_session ON presentations(session_id)`,
	`CREATE TABLE IF NOT EXISTS presentation_speakers (
		presentation_id TEXT NOT NULL REFERENCES presentations(id) ON DELETE CASCADE,
		participant_id  TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
		role            TEXT NOT NULL,
		sort_order      INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (presentation_id, participant_id)
	)`,
}

// Migrate applies any schema migrations not yet recorded in
// schema_migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite: storage not opened")
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("sqlite: create schema_migrations: %w", err)
	}

	var current int
	if err := s.db.GetContext(ctx, &current, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	for version := current; version < len(migrations); version++ {
		statement := migrations[version]
		err := s.InTransaction(ctx, func(ctx context.Context) error {
			if _, err := s.execer(ctx).ExecContext(ctx, statement); err != nil {
				return err
			}
			_, err := s.execer(ctx).ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version+1)
			return err
		})
		if err != nil {
			return fmt.Errorf("sqlite: apply migration %d: %w", version+1, err)
		}
	}

	return nil
}

type txContextKey struct{}

// InTransaction runs fn inside one transaction. Repository calls made with
// the derived context join the transaction; nesting reuses the outer one.
func (s *Storage) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite: storage not opened")
	}

	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlite: transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit transaction: %w", err)
	}
	return nil
}

func txFromContext(ctx context.Context) *sqlx.Tx {
	if ctx == nil {
		return nil
	}
	tx, _ := ctx.Value(txContextKey{}).(*sqlx.Tx)
	return tx
}

// execer returns the transaction bound to ctx, or the shared handle.
func (s *Storage) execer(ctx context.Context) sqlx.ExtContext {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}
