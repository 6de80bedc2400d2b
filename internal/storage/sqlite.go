// internal/storage/sqlite.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store on top of a SQLite connection pool. It owns
// all SQL construction and result mapping; callers only see domain entities
// and the sentinel errors above.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open connection pool (see ConnectDB).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Ping executes a trivial query and reports reachability. Any underlying
// failure is swallowed into false.
func (s *SQLiteStore) Ping(ctx context.Context) bool {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		customLog.Warnf("Storage: Ping failed: %v", err)
		return false
	}
	return true
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure
// mentioning the given column list (e.g. "sites.domain").
func isUniqueViolation(err error, column string) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return strings.Contains(sqliteErr.Error(), column)
	}
	return false
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY constraint
// failure (a child row referencing a missing parent).
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
