// Package postgresstorage implements the storage.Backend interface on a
// Postgres database, falling back to local SQLite when Postgres is
// unreachable so missions can run without infrastructure.
package postgresstorage

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/agroscout/fieldsim/internal/database"
	"github.com/agroscout/fieldsim/internal/storage/gormstore"
)

// Backend wraps the GORM backend for Postgres-specific behavior.
type Backend struct {
	*gormstore.Backend

	// SavedLocally reports whether the fallback SQLite path was taken.
	SavedLocally bool
}

// New connects using the configured db.* settings; Connect falls back to
// SQLite when Postgres cannot be reached or validated.
func New(log *slog.Logger, dbLog zerolog.Logger) (*Backend, error) {
	mgr := database.NewManager(dbLog)
	if err := mgr.Connect(); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &Backend{
		Backend:      gormstore.New(mgr.DB, log),
		SavedLocally: mgr.ShouldSaveLocal,
	}, nil
}
