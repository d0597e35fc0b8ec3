// Package store owns the SQLite database behind the ingestion pipeline.
// All writes flow through a single write handle; a separate read pool
// serves concurrent lookups during normalization.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added rune_sellers table
const currentSchemaVersion = 1

// Store is the ingestion database. The write handle is capped at one open
// connection (SQLite supports exactly one writer); reads go through a small
// separate pool so lookups never queue behind a batch transaction.
type Store struct {
	write *sql.DB
	read  *sql.DB
}

// Open creates or opens the database at path, applying pragmas and schema
// migrations. Idempotent - safe to call on an existing database.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
func Open(path string) (*Store, error) {
	write, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := write.Ping(); err != nil {
		write.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Single writer to avoid SQLITE_BUSY errors
	write.SetMaxOpenConns(1)
	write.SetMaxIdleConns(1)

	if err := applyPragmas(write); err != nil {
		write.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(write); err != nil {
		write.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	read, err := sql.Open("sqlite3", path)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("failed to open read pool: %w", err)
	}
	read.SetMaxOpenConns(4)
	if err := applyPragmas(read); err != nil {
		read.Close()
		write.Close()
		return nil, fmt.Errorf("failed to configure read pool: %w", err)
	}

	return &Store{write: write, read: read}, nil
}

// Close closes both database handles.
func (s *Store) Close() error {
	var firstErr error
	if s.read != nil {
		firstErr = s.read.Close()
	}
	if s.write != nil {
		if err := s.write.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadDB returns the read pool for direct queries. Never use it for writes.
func (s *Store) ReadDB() *sql.DB {
	return s.read
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// migrateToV1 adds the rune_sellers table for databases created before the
// rune-shop extraction pass existed. New databases get it from schema.sql;
// CREATE TABLE IF NOT EXISTS makes this a no-op for them.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS rune_sellers (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			npc_name     TEXT NOT NULL,
			item_type_id INTEGER NOT NULL,
			price        INTEGER NOT NULL DEFAULT 0,
			charges      INTEGER,
			vocation     TEXT NOT NULL DEFAULT '',
			category     TEXT NOT NULL DEFAULT 'rune',
			account_type TEXT NOT NULL DEFAULT '',
			UNIQUE (npc_name, item_type_id, vocation)
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.write.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
