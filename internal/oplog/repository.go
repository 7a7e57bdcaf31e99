// Package oplog keeps a local history of fleet operations.
//
// Every start, stop, create, and firewall command appends a record after
// it completes, so operators can answer "what did I run against this
// fleet and when" without trawling cloud audit logs.
//
// Storage is backed by a SQLite database at ~/.config/vmops/vmops.db
// (or the platform-equivalent path returned by os.UserConfigDir).
package oplog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	appDir = "vmops"
	dbFile = "vmops.db"
)

// pathOverride, when non-empty, replaces the default database path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the database path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override. Intended for testing.
func ResetPath() { pathOverride = "" }

// Repository defines the persistence interface for operation records.
type Repository interface {
	// Append inserts a record and assigns its ID.
	Append(record *Record) error

	// ListRecent returns the most recent n records, newest first.
	ListRecent(n int) ([]Record, error)

	// DeleteOlderThan removes records older than d. Returns the number
	// of records removed.
	DeleteOlderThan(d time.Duration) (int64, error)

	// Close releases database resources.
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// DefaultPath returns the default database path.
func DefaultPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("oplog: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, dbFile), nil
}

// Open creates or opens the operation log at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
// The parent directory is created if it does not exist.
func OpenAt(path string) (*SQLiteRepository, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("oplog: failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("oplog: failed to open database: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

// migrate creates the operations table if it doesn't exist.
func (r *SQLiteRepository) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS operations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			op          TEXT    NOT NULL,
			instance    TEXT    NOT NULL DEFAULT '',
			zone        TEXT    NOT NULL DEFAULT '',
			provider    TEXT    NOT NULL DEFAULT '',
			outcome     TEXT    NOT NULL,
			detail      TEXT    NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX IF NOT EXISTS idx_operations_created ON operations(created_at);
	`
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("oplog: migration failed: %w", err)
	}
	return nil
}

// Append inserts a record and assigns its ID.
func (r *SQLiteRepository) Append(record *Record) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.Exec(`
		INSERT INTO operations (op, instance, zone, provider, outcome, detail, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Op, record.Instance, record.Zone, record.Provider,
		record.Outcome, record.Detail, record.Duration.Milliseconds(),
		record.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("oplog: insert failed: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("oplog: failed to get last insert ID: %w", err)
	}
	record.ID = id
	return nil
}

// ListRecent returns the most recent n records, newest first.
func (r *SQLiteRepository) ListRecent(n int) ([]Record, error) {
	rows, err := r.db.Query(`
		SELECT id, op, instance, zone, provider, outcome, detail, duration_ms, created_at
		FROM operations ORDER BY created_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("oplog: query failed: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var createdStr string
		var durationMS int64
		err := rows.Scan(
			&record.ID, &record.Op, &record.Instance, &record.Zone, &record.Provider,
			&record.Outcome, &record.Detail, &durationMS, &createdStr,
		)
		if err != nil {
			return nil, fmt.Errorf("oplog: scan failed: %w", err)
		}
		record.Duration = time.Duration(durationMS) * time.Millisecond
		record.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, record)
	}
	return records, rows.Err()
}

// DeleteOlderThan removes records older than d.
func (r *SQLiteRepository) DeleteOlderThan(d time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-d).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM operations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("oplog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
