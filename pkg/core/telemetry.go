// pkg/core/telemetry.go
package core

// TelemetryFrame is one tick of simulated sensor output. Frames are
// immutable once appended to a MissionResult.
type TelemetryFrame struct {
	Timestamp       float64  `json:"timestamp"` // simulated seconds since mission start
	Pose            Pose     `json:"pose"`
	BatteryLevel    float64  `json:"battery"`
	Gnss            GeoPoint `json:"gnss"`
	LidarHitCount   int      `json:"lidarCount"`
	CameraFootprint Polygon  `json:"cameraFov"`
}
