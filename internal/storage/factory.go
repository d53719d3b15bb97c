// internal/storage/factory.go
package storage

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agroscout/fieldsim/internal/config"
	"github.com/agroscout/fieldsim/internal/influx"
	"github.com/agroscout/fieldsim/internal/storage/memory"
	postgresstorage "github.com/agroscout/fieldsim/internal/storage/postgres"
	sqlitestorage "github.com/agroscout/fieldsim/internal/storage/sqlite"
	wsstorage "github.com/agroscout/fieldsim/internal/storage/websocket"
	"github.com/agroscout/fieldsim/pkg/core"
)

// NewBackend creates a storage backend based on configuration.
func NewBackend(backendType string, log *slog.Logger, dbLog zerolog.Logger) (Backend, error) {
	switch backendType {
	case "memory":
		return memory.New(config.MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		}), nil
	case "sqlite":
		return sqlitestorage.New(viper.GetString("db.sqlitePath"), log, dbLog)
	case "postgres":
		return postgresstorage.New(log, dbLog)
	case "websocket":
		return wsstorage.New(wsstorage.Config{
			URL:    viper.GetString("websocket.url"),
			Secret: viper.GetString("websocket.secret"),
		}, log), nil
	case "influx":
		return influx.New(dbLog), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", backendType)
	}
}

// Multi fans out every call to all children, returning the first error
// encountered while still calling the remaining children.
type Multi []Backend

func (m Multi) each(f func(Backend) error) error {
	var firstErr error
	for _, b := range m {
		if err := f(b); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m Multi) Init() error  { return m.each(Backend.Init) }
func (m Multi) Close() error { return m.each(Backend.Close) }

func (m Multi) StartMission(spec *core.MissionSpec, path core.Path) error {
	return m.each(func(b Backend) error { return b.StartMission(spec, path) })
}

func (m Multi) RecordFrame(frame *core.TelemetryFrame) error {
	return m.each(func(b Backend) error { return b.RecordFrame(frame) })
}

func (m Multi) EndMission(result *core.MissionResult) error {
	return m.each(func(b Backend) error { return b.EndMission(result) })
}
