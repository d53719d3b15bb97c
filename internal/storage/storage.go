// internal/storage/storage.go
package storage

import "github.com/agroscout/fieldsim/pkg/core"

// Backend is the interface all storage implementations must satisfy.
// A mission run calls StartMission once, RecordFrame once per tick, and
// EndMission once with the finalized result.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Mission recording
	StartMission(spec *core.MissionSpec, path core.Path) error
	RecordFrame(frame *core.TelemetryFrame) error
	EndMission(result *core.MissionResult) error
}

// Exportable is an optional interface for backends that produce a file
// suitable for upload or inspection after the mission ends.
type Exportable interface {
	GetExportedFilePath() string
}
