// ABOUTME: Database connection management and initialization
// ABOUTME: Opens SQLite with WAL mode through either the cgo or the pure-Go driver
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported driver names.
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

func OpenDatabase(path string) (*sql.DB, error) {
	return OpenDatabaseWithDriver(DriverCGO, path)
}

func OpenDatabaseWithDriver(driver, path string) (*sql.DB, error) {
	if path != ":memory:" {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}

	dsn, err := dataSourceName(driver, path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Configure connection pool for SQLite (avoid database locked errors).
	// A single connection also keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func dataSourceName(driver, path string) (string, error) {
	switch driver {
	case DriverCGO:
		return path + "?_journal_mode=WAL&_foreign_keys=on", nil
	case DriverPureGo:
		return path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q (use %s or %s)", driver, DriverCGO, DriverPureGo)
	}
}
