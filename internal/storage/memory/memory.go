// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"sync"

	"github.com/agroscout/fieldsim/internal/config"
	"github.com/agroscout/fieldsim/pkg/core"
)

// Backend stores mission data in memory and exports to JSON on EndMission.
type Backend struct {
	cfg config.MemoryConfig

	mu       sync.RWMutex
	spec     *core.MissionSpec
	path     core.Path
	frames   []core.TelemetryFrame
	exported string
}

// New creates a new in-memory backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init is a no-op for the in-memory backend.
func (b *Backend) Init() error { return nil }

// Close is a no-op; the export happens in EndMission.
func (b *Backend) Close() error { return nil }

// StartMission captures the mission spec and planned path.
func (b *Backend) StartMission(spec *core.MissionSpec, path core.Path) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.spec = spec
	b.path = path
	b.frames = b.frames[:0]
	b.exported = ""
	return nil
}

// RecordFrame appends one frame.
func (b *Backend) RecordFrame(frame *core.TelemetryFrame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.spec == nil {
		return fmt.Errorf("no mission started")
	}
	b.frames = append(b.frames, *frame)
	return nil
}

// EndMission writes the JSON export file.
func (b *Backend) EndMission(result *core.MissionResult) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.spec == nil {
		return fmt.Errorf("no mission started")
	}
	return b.exportJSON(result)
}

// FrameCount returns the number of recorded frames.
func (b *Backend) FrameCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.frames)
}

// GetExportedFilePath returns the path of the last export, or "" before
// EndMission.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.exported
}
