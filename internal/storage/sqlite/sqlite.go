// Package sqlitestorage implements the storage.Backend interface on a local
// SQLite database via the pure-Go driver. It wraps the GORM backend via
// composition; the only SQLite-specific concern is opening the database.
package sqlitestorage

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/agroscout/fieldsim/internal/database"
	"github.com/agroscout/fieldsim/internal/storage/gormstore"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstore.Backend
}

// New creates a new SQLite storage backend. An empty path opens an
// in-memory database.
func New(path string, log *slog.Logger, dbLog zerolog.Logger) (*Backend, error) {
	mgr := database.NewManager(dbLog)
	db, err := mgr.GetSqliteDB(path)
	if err != nil {
		return nil, fmt.Errorf("open SQLite DB: %w", err)
	}
	return &Backend{Backend: gormstore.New(db, log)}, nil
}
