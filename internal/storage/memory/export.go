// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agroscout/fieldsim/pkg/core"
)

// MissionExport is the root JSON structure written for each finished run.
type MissionExport struct {
	MissionName string                `json:"missionName"`
	Origin      core.GeoPoint         `json:"origin"`
	Vehicle     core.VehicleConfig    `json:"vehicle"`
	Status      string                `json:"status"`
	Path        core.Path             `json:"path"`
	Telemetry   []core.TelemetryFrame `json:"telemetry"`
}

// exportJSON writes the mission data to a JSON file, gzipped when
// CompressOutput is set. Caller holds b.mu.
func (b *Backend) exportJSON(result *core.MissionResult) error {
	export := MissionExport{
		MissionName: b.spec.Name,
		Origin:      b.spec.Origin,
		Vehicle:     b.spec.VehicleConfig,
		Status:      result.Status,
		Path:        b.path,
		Telemetry:   b.frames,
	}

	name := export.MissionName
	if name == "" {
		name = "mission"
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, ":", "_")
	timestamp := time.Now().Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", name, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", name, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.Marshal(export)
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if b.cfg.CompressOutput {
		gz := gzip.NewWriter(file)
		if _, err := gz.Write(data); err != nil {
			return fmt.Errorf("failed to write gzipped export: %w", err)
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer: %w", err)
		}
	} else {
		if _, err := file.Write(data); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}

	b.exported = outputPath
	return nil
}
