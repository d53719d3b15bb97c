package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/agroscout/fieldsim/internal/geo"
	"github.com/agroscout/fieldsim/pkg/core"
)

// FromMissionSpec builds the Mission row for a starting run.
func FromMissionSpec(spec *core.MissionSpec, path core.Path) (*Mission, error) {
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return nil, fmt.Errorf("marshal planned path: %w", err)
	}

	m := &Mission{
		Name:        spec.Name,
		StartTime:   time.Now(),
		OriginLat:   spec.Origin.Lat,
		OriginLon:   spec.Origin.Lon,
		Vehicle:     spec.VehicleConfig.Model,
		PathType:    spec.PathConfig.Type,
		Status:      "running",
		PlannedPath: datatypes.JSON(pathJSON),
	}

	if ls, err := geo.PathLineString(path); err == nil {
		m.PlannedPathWKB = ls.AsBinary()
	}
	return m, nil
}

// FromTelemetryFrame builds the TelemetryRecord row for one tick.
func FromTelemetryFrame(missionID uint, frame *core.TelemetryFrame) (*TelemetryRecord, error) {
	fovJSON, err := json.Marshal(frame.CameraFootprint)
	if err != nil {
		return nil, fmt.Errorf("marshal camera footprint: %w", err)
	}

	fix3857, err := geo.Coords3857(frame.Gnss.Lon, frame.Gnss.Lat)
	if err != nil {
		return nil, fmt.Errorf("project gnss fix: %w", err)
	}

	return &TelemetryRecord{
		MissionID:       missionID,
		Timestamp:       frame.Timestamp,
		X:               frame.Pose.X,
		Y:               frame.Pose.Y,
		Theta:           frame.Pose.Theta,
		BatteryLevel:    frame.BatteryLevel,
		GnssLat:         frame.Gnss.Lat,
		GnssLon:         frame.Gnss.Lon,
		Gnss3857:        fix3857.AsBinary(),
		LidarHitCount:   frame.LidarHitCount,
		CameraFootprint: datatypes.JSON(fovJSON),
	}, nil
}
