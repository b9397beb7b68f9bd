// ABOUTME: Repository interface for report history storage.
// ABOUTME: Lets callers and tests swap the SQLite store.
package storage

import "github.com/harperreed/mousetrial/internal/models"

// Repository defines the storage interface for report runs.
type Repository interface {
	SaveRun(r *models.Run) error
	GetRun(idOrPrefix string) (*models.Run, error)
	ListRuns(limit int) ([]*models.Run, error)
	DeleteRun(idOrPrefix string) error

	Path() string
	Close() error
}

var _ Repository = (*DB)(nil)
