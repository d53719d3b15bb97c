// pkg/core/mission.go
package core

import "encoding/json"

// Vehicle model identifiers accepted in VehicleConfig.Model.
const (
	VehicleDifferential = "differential"
	VehicleAckermann    = "ackermann"
)

// Path planning strategies accepted in PathConfig.Type.
const (
	PathTypeCoverage = "coverage"
	PathTypeAStar    = "astar"
	PathTypeLiteral  = "literal"
)

// Mission terminal statuses.
const (
	StatusCompleted    = "completed"
	StatusTimeout      = "timeout"
	StatusBatteryEmpty = "battery_empty"
)

// VehicleConfig describes the simulated vehicle platform.
type VehicleConfig struct {
	Model               string  `json:"model"`
	Wheelbase           float64 `json:"wheelbase"`
	ConsumptionPerMeter float64 `json:"consumptionPerMeter"`
	TargetSpeed         float64 `json:"speed"`
	GnssNoiseStdDev     float64 `json:"gnssNoise"`
}

// PathConfig selects the planning strategy and its parameters.
// Start and Goal are only used for the astar strategy, Width and AngleDeg
// only for coverage. Waypoints are only used for the literal strategy.
type PathConfig struct {
	Type      string       `json:"type"`
	Width     float64      `json:"width"`
	AngleDeg  float64      `json:"angleDeg"`
	Start     *LocalPoint  `json:"start,omitempty"`
	Goal      *LocalPoint  `json:"goal,omitempty"`
	Waypoints []LocalPoint `json:"waypoints,omitempty"`
}

// SimulationConfig controls the fixed-timestep loop.
type SimulationConfig struct {
	Dt       float64 `json:"dt"`       // seconds per tick
	Duration float64 `json:"duration"` // maximum simulated seconds
}

// MissionSpec is the external mission request. Boundary and obstacle
// geometries arrive as raw GeoJSON-like documents and are validated by the
// planner at mission start; everything downstream works in the local frame.
type MissionSpec struct {
	Name          string            `json:"name"`
	Origin        GeoPoint          `json:"origin"`
	FieldBoundary json.RawMessage   `json:"field_boundary"`
	Obstacles     []json.RawMessage `json:"obstacles"`
	PathConfig    PathConfig        `json:"path_config"`
	VehicleConfig VehicleConfig     `json:"vehicle_config"`
	Simulation    SimulationConfig  `json:"simulation_config"`
}

// MissionResult is the sole output of a simulation run. Telemetry is
// append-only while the loop runs and read-only afterwards.
type MissionResult struct {
	Status    string           `json:"status"`
	Path      Path             `json:"path"`
	Telemetry []TelemetryFrame `json:"telemetry"`
}
