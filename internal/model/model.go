package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent
// tables in the database schema.
var DatabaseModels = []interface{}{
	&Mission{},
	&TelemetryRecord{},
}

// Mission is one simulation run.
type Mission struct {
	gorm.Model
	Name      string    `json:"name" gorm:"size:255"`
	StartTime time.Time `json:"startTime"`
	OriginLat float64   `json:"originLat"`
	OriginLon float64   `json:"originLon"`
	Vehicle   string    `json:"vehicle" gorm:"size:31"`
	PathType  string    `json:"pathType" gorm:"size:31"`
	Status    string    `json:"status" gorm:"size:31"`

	// PlannedPath is the local-XY polyline as JSON; PlannedPathWKB is the
	// same geometry as WKB for spatially-aware consumers.
	PlannedPath    datatypes.JSON `json:"plannedPath"`
	PlannedPathWKB []byte         `json:"-"`

	FrameCount int `json:"frameCount"`
}

// TelemetryRecord is one simulated tick.
type TelemetryRecord struct {
	gorm.Model
	MissionID uint    `json:"missionId" gorm:"index"`
	Timestamp float64 `json:"timestamp"`

	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`

	BatteryLevel float64 `json:"battery"`

	GnssLat float64 `json:"gnssLat"`
	GnssLon float64 `json:"gnssLon"`
	// Gnss3857 is the fix re-projected to EPSG:3857 and encoded as WKB, so
	// web map frontends can consume it without a spatial database.
	Gnss3857 []byte `json:"-"`

	LidarHitCount   int            `json:"lidarCount"`
	CameraFootprint datatypes.JSON `json:"cameraFov"`
}
