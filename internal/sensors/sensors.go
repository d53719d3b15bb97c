// Package sensors emulates the robot's onboard sensor suite: GNSS receiver,
// 2D range scanner, and downward-pitched camera. Sensors read the robot
// state but never mutate it.
package sensors

import (
	"math/rand"

	"github.com/agroscout/fieldsim/internal/world"
)

// LidarConfig controls the simulated 2D range scanner.
type LidarConfig struct {
	MaxRange float64 // meters
	FovDeg   float64 // field of view centered on heading
	NumRays  int
}

// CameraConfig controls the simulated downward camera.
type CameraConfig struct {
	HFovDeg     float64 // horizontal field of view, degrees
	AspectRatio float64 // horizontal / vertical
	Height      float64 // mount height above ground, meters
	PitchDeg    float64 // 0 horizontal, -90 straight down
}

// DefaultLidar matches the reference scanner: full-circle scan, one ray per
// degree, 20 m range.
var DefaultLidar = LidarConfig{MaxRange: 20, FovDeg: 360, NumRays: 360}

// DefaultCamera matches the reference camera rig.
var DefaultCamera = CameraConfig{HFovDeg: 60, AspectRatio: 1.33, Height: 1.5, PitchDeg: -30}

// Simulator bundles the sensor suite for one mission run.
type Simulator struct {
	gnss      *GNSS
	lidar     LidarConfig
	camera    CameraConfig
	obstacles *world.ObstacleSet
}

// New creates a sensor suite. rng drives the GNSS noise draws; the rest of
// the suite is deterministic.
func New(gnssStdDev float64, lidar LidarConfig, camera CameraConfig, obstacles *world.ObstacleSet, rng *rand.Rand) *Simulator {
	return &Simulator{
		gnss:      NewGNSS(gnssStdDev, rng),
		lidar:     lidar,
		camera:    camera,
		obstacles: obstacles,
	}
}

// GNSS returns the noisy position receiver.
func (s *Simulator) GNSS() *GNSS { return s.gnss }
