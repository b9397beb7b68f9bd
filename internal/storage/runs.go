// ABOUTME: Run CRUD operations for SQLite storage.
// ABOUTME: Treatments and chart paths are stored as JSON arrays.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/mousetrial/internal/models"
)

// ErrNotFound is returned when no run matches an ID or prefix.
var ErrNotFound = errors.New("not found")

// SaveRun stores a run and its percent changes.
func (d *DB) SaveRun(r *models.Run) error {
	treatments, err := json.Marshal(nonNil(r.Treatments))
	if err != nil {
		return fmt.Errorf("encode treatments: %w", err)
	}
	charts, err := json.Marshal(nonNil(r.Charts))
	if err != nil {
		return fmt.Errorf("encode charts: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (id, started_at, drug_data, trial_data, mice, observations, records, dropped, treatments, charts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID.String(),
		r.StartedAt.Format(time.RFC3339),
		r.DrugData,
		r.TrialData,
		r.Mice,
		r.Observations,
		r.Records,
		r.Dropped,
		string(treatments),
		string(charts),
		r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	for i, c := range r.PercentChanges {
		_, err := tx.Exec(`INSERT INTO run_changes (run_id, position, drug, percent) VALUES (?, ?, ?, ?)`,
			r.ID.String(), i, c.Drug, c.Percent)
		if err != nil {
			return fmt.Errorf("save run change: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID or ID prefix, with its percent changes.
func (d *DB) GetRun(idOrPrefix string) (*models.Run, error) {
	id, err := d.resolveRunID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	r, err := scanRun(d.db.QueryRow(runSelect+` WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := d.loadChanges(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRuns returns runs, most recent first. A limit of 0 means all.
func (d *DB) ListRuns(limit int) ([]*models.Run, error) {
	query := runSelect + ` ORDER BY started_at DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	runs, err := d.queryRuns(query, args...)
	if err != nil {
		return nil, err
	}

	// Changes are loaded after the run rows are closed; the pool holds one
	// connection.
	for _, r := range runs {
		if err := d.loadChanges(r); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (d *DB) queryRuns(query string, args ...interface{}) ([]*models.Run, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run by ID or prefix.
func (d *DB) DeleteRun(idOrPrefix string) error {
	id, err := d.resolveRunID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete run %s: %w", idOrPrefix, ErrNotFound)
	}
	return nil
}

// resolveRunID finds the full ID from a prefix.
func (d *DB) resolveRunID(idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM runs WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve run ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan run ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("run %s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple runs", idOrPrefix)
	}
	return matches[0], nil
}

const runSelect = `
	SELECT id, started_at, drug_data, trial_data, mice, observations, records, dropped, treatments, charts, created_at
	FROM runs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var r models.Run
	var idStr, startedAt, createdAt, treatments, charts string

	err := row.Scan(&idStr, &startedAt, &r.DrugData, &r.TrialData,
		&r.Mice, &r.Observations, &r.Records, &r.Dropped,
		&treatments, &charts, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	r.ID, _ = uuid.Parse(idStr)
	r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if err := json.Unmarshal([]byte(treatments), &r.Treatments); err != nil {
		return nil, fmt.Errorf("decode treatments: %w", err)
	}
	if err := json.Unmarshal([]byte(charts), &r.Charts); err != nil {
		return nil, fmt.Errorf("decode charts: %w", err)
	}
	return &r, nil
}

func (d *DB) loadChanges(r *models.Run) error {
	rows, err := d.db.Query(`SELECT drug, percent FROM run_changes WHERE run_id = ? ORDER BY position`, r.ID.String())
	if err != nil {
		return fmt.Errorf("list run changes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.PercentChange
		if err := rows.Scan(&c.Drug, &c.Percent); err != nil {
			return fmt.Errorf("scan run change: %w", err)
		}
		r.PercentChanges = append(r.PercentChanges, c)
	}
	return rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
