package sensors

import (
	"math"
	"testing"

	"github.com/agroscout/fieldsim/internal/world"
	"github.com/agroscout/fieldsim/pkg/core"
)

func cameraSim(cfg CameraConfig) *Simulator {
	return New(0, DefaultLidar, cfg, world.NewObstacleSet(nil), nil)
}

func TestCameraFootprint_FourCorners(t *testing.T) {
	sim := cameraSim(DefaultCamera)

	fp := sim.CameraFootprint(core.RobotState{X: 3, Y: 4, Theta: 0.7})
	if len(fp) != 4 {
		t.Fatalf("expected 4 footprint corners, got %d", len(fp))
	}
}

func TestCameraFootprint_NadirIsCentered(t *testing.T) {
	// Straight down: the footprint is a rectangle centered on the vehicle.
	sim := cameraSim(CameraConfig{HFovDeg: 60, AspectRatio: 1.33, Height: 1.5, PitchDeg: -90})

	state := core.RobotState{X: 10, Y: -20, Theta: 0.3}
	fp := sim.CameraFootprint(state)
	if len(fp) != 4 {
		t.Fatalf("expected 4 corners, got %d", len(fp))
	}

	var cx, cy float64
	for _, p := range fp {
		cx += p.X / 4
		cy += p.Y / 4
	}
	if math.Abs(cx-state.X) > 1e-9 || math.Abs(cy-state.Y) > 1e-9 {
		t.Errorf("expected centroid at (%f,%f), got (%f,%f)", state.X, state.Y, cx, cy)
	}
}

func TestCameraFootprint_PitchedAheadOfVehicle(t *testing.T) {
	sim := cameraSim(DefaultCamera)

	fp := sim.CameraFootprint(core.RobotState{X: 0, Y: 0, Theta: 0})
	for i, p := range fp {
		if p.X <= 0 {
			t.Errorf("corner %d: expected footprint ahead of an east-facing vehicle, got X=%f", i, p.X)
		}
	}
}

func TestCameraFootprint_YawRotatesFootprint(t *testing.T) {
	sim := cameraSim(DefaultCamera)

	fp := sim.CameraFootprint(core.RobotState{X: 0, Y: 0, Theta: math.Pi / 2})
	for i, p := range fp {
		if p.Y <= 0 {
			t.Errorf("corner %d: expected footprint north of a north-facing vehicle, got Y=%f", i, p.Y)
		}
	}
}

func TestCameraFootprint_HorizonRaysGetFarPoints(t *testing.T) {
	// Slightly pitched up: the upper frustum rays never reach the ground
	// and are substituted with far points; the count stays at 4.
	sim := cameraSim(CameraConfig{HFovDeg: 60, AspectRatio: 1.33, Height: 1.5, PitchDeg: 10})

	fp := sim.CameraFootprint(core.RobotState{X: 0, Y: 0, Theta: 0})
	if len(fp) != 4 {
		t.Fatalf("expected 4 corners even with sky-pointing rays, got %d", len(fp))
	}

	far := 0
	for _, p := range fp {
		if math.Hypot(p.X, p.Y) > 50 {
			far++
		}
	}
	if far == 0 {
		t.Error("expected at least one far-point corner when pitched above the horizon")
	}
}
