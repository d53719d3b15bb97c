// Package gormstore implements storage.Backend on top of a *gorm.DB.
// The SQLite and Postgres backends wrap it via composition; the only
// driver-specific concerns live in those wrappers.
package gormstore

import (
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/agroscout/fieldsim/internal/model"
	"github.com/agroscout/fieldsim/pkg/core"
)

// flushThreshold is the number of buffered telemetry rows that triggers a
// batched insert.
const flushThreshold = 500

// Backend persists missions and telemetry through GORM.
type Backend struct {
	db  *gorm.DB
	log *slog.Logger

	mu      sync.Mutex
	mission *model.Mission
	pending []*model.TelemetryRecord
}

// New creates a GORM-backed storage backend.
func New(db *gorm.DB, log *slog.Logger) *Backend {
	return &Backend{db: db, log: log}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close flushes any buffered rows and releases the connection.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.flushLocked(); err != nil {
		return err
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// StartMission creates the mission row.
func (b *Backend) StartMission(spec *core.MissionSpec, path core.Path) error {
	m, err := model.FromMissionSpec(spec, path)
	if err != nil {
		return err
	}
	if err := b.db.Create(m).Error; err != nil {
		return fmt.Errorf("create mission row: %w", err)
	}

	b.mu.Lock()
	b.mission = m
	b.pending = b.pending[:0]
	b.mu.Unlock()
	return nil
}

// RecordFrame buffers one telemetry row, flushing in batches.
func (b *Backend) RecordFrame(frame *core.TelemetryFrame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mission == nil {
		return fmt.Errorf("no mission started")
	}

	rec, err := model.FromTelemetryFrame(b.mission.ID, frame)
	if err != nil {
		return err
	}
	b.pending = append(b.pending, rec)
	if len(b.pending) >= flushThreshold {
		return b.flushLocked()
	}
	return nil
}

// EndMission flushes remaining telemetry and finalizes the mission row.
func (b *Backend) EndMission(result *core.MissionResult) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mission == nil {
		return fmt.Errorf("no mission started")
	}
	if err := b.flushLocked(); err != nil {
		return err
	}

	updates := map[string]any{
		"status":      result.Status,
		"frame_count": len(result.Telemetry),
	}
	if err := b.db.Model(b.mission).Updates(updates).Error; err != nil {
		return fmt.Errorf("finalize mission row: %w", err)
	}
	b.log.Info("mission persisted",
		"missionId", b.mission.ID,
		"status", result.Status,
		"frames", len(result.Telemetry))
	b.mission = nil
	return nil
}

func (b *Backend) flushLocked() error {
	if len(b.pending) == 0 {
		return nil
	}
	if err := b.db.CreateInBatches(b.pending, flushThreshold).Error; err != nil {
		return fmt.Errorf("insert telemetry batch: %w", err)
	}
	b.pending = b.pending[:0]
	return nil
}
