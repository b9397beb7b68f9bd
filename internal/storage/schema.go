// ABOUTME: Versioned schema for the run history database.
// ABOUTME: Migrations are applied in order and tracked with PRAGMA user_version.
package storage

import "fmt"

// migrations[i] upgrades the schema from version i to i+1.
var migrations = []string{
	// 1: runs and their per-treatment percent changes
	`
	CREATE TABLE runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		drug_data TEXT NOT NULL,
		trial_data TEXT NOT NULL,
		mice INTEGER NOT NULL,
		observations INTEGER NOT NULL,
		records INTEGER NOT NULL,
		dropped INTEGER NOT NULL,
		treatments TEXT NOT NULL,
		charts TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE run_changes (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		drug TEXT NOT NULL,
		percent REAL NOT NULL,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX idx_runs_started ON runs(started_at DESC);
	`,
}

// SchemaVersion is the schema version this build writes.
var SchemaVersion = len(migrations)

// schemaVersion reads the stored schema version.
func (d *DB) schemaVersion() (int, error) {
	var v int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// migrate brings the database up to SchemaVersion. A database written by a
// newer build is rejected rather than modified.
func (d *DB) migrate() error {
	current, err := d.schemaVersion()
	if err != nil {
		return err
	}
	if current > SchemaVersion {
		return fmt.Errorf("history database is at schema version %d, this build supports %d", current, SchemaVersion)
	}

	for v := current; v < SchemaVersion; v++ {
		tx, err := d.db.Begin()
		if err != nil {
			return fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
	}
	return nil
}
