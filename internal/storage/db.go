// ABOUTME: Run history database: a single SQLite file under the XDG data dir.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// sqlite settings applied to every connection before migrating.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
}

// DB is the run history store.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the history database at dbPath and migrates it to
// SchemaVersion. The file is readable by its owner only.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", dbPath, err)
	}
	// foreign_keys is per connection; one connection keeps cascades reliable.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{db: sqlDB, dbPath: dbPath}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("execute %s: %w", p, err)
		}
	}
	if err := os.Chmod(dbPath, 0600); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("set history permissions: %w", err)
	}
	if err := d.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// DataDir returns $XDG_DATA_HOME/mousetrial, defaulting to ~/.local/share.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mousetrial")
}

// DefaultDBPath is where run history lives when the config names no file.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "history.db")
}

// Path returns the database file, shown by `history` when it is empty.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}
