// Package sqlitestore implements the repositories on a single SQLite file.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/runoshun/goals/internal/domain"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Ensure DB implements domain.StoreInitializer.
var _ domain.StoreInitializer = (*DB)(nil)

// DB wraps the sql.DB connection shared by all repositories.
type DB struct {
	*sql.DB
	path string
}

// Open creates the database file (and its directory) if needed and connects to it.
// One connection is used for the process lifetime.
func Open(path string) (*DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create db directory: %w: %w", domain.ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, wrapErr("open database", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, wrapErr("ping database", err)
	}

	return &DB{DB: db, path: path}, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Initialize creates every table that does not exist yet and migrates
// task tables created before tasks had a day.
func (d *DB) Initialize() error {
	if err := d.ensurePeriodTable(weeklyGoalsTable); err != nil {
		return err
	}
	if err := d.ensurePeriodTable(dailyObjectivesTable); err != nil {
		return err
	}
	return d.ensureTasksTable()
}

func (d *DB) ensurePeriodTable(t periodTable) error {
	if _, err := d.Exec(t.schema); err != nil {
		return wrapErr("create table "+t.name, err)
	}
	return nil
}

// columns returns the column names of a table.
func (d *DB) columns(table string) (map[string]bool, error) {
	rows, err := d.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// wrapErr attaches the matching domain sentinel to a driver error.
func wrapErr(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrSchemaViolation, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
