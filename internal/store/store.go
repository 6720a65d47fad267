package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions:
// 0 - databases created before versioning
// 1 - idx_trees_source_name
const schemaVersion = 1

// pragmas applied to every connection. WAL keeps readers unblocked while a
// compile writes; the busy timeout covers the handoff between them.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// Store is a content-addressed cache of canonicalized source units backed
// by a SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database at path, configures the
// connection, and brings the schema up to the current version. Opening the
// same path repeatedly is safe.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to cache database: %w", err)
	}

	// SQLite permits a single writer; a second connection would only ever
	// observe SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the database handle. Safe on a zero Store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate upgrades older databases in place, then stamps the current
// version. Fresh databases already carry the full schema, so for them the
// steps are no-ops.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		// v1 added the source_name index. IF NOT EXISTS keeps the step
		// harmless for databases that got it from schema.sql.
		if _, err := db.Exec(
			"CREATE INDEX IF NOT EXISTS idx_trees_source_name ON trees(source_name)",
		); err != nil {
			return fmt.Errorf("migrate cache schema to v1: %w", err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}
