// Package kinematics implements the vehicle motion models and battery
// accounting. Adding a new platform requires only implementing Model and
// registering it in New — the mission loop never needs to change.
package kinematics

import (
	"fmt"
	"math"

	"github.com/agroscout/fieldsim/pkg/core"
)

// Control is the per-tick command computed by the path tracker. Omega is
// used by the differential model, Phi by the ackermann model.
type Control struct {
	V     float64 // forward speed, m/s
	Omega float64 // turn rate, rad/s
	Phi   float64 // steering angle, rad
}

// Model integrates one timestep of vehicle motion. Implementations must
// renormalize heading to (-pi, pi] and never increase the battery level.
type Model interface {
	Step(s core.RobotState, c Control, dt float64) core.RobotState
}

// New constructs the motion model for the configured vehicle.
// Unrecognized model strings fail fast with core.ErrInvalidVehicleType.
func New(cfg core.VehicleConfig) (Model, error) {
	switch cfg.Model {
	case core.VehicleDifferential:
		return &Differential{ConsumptionPerMeter: cfg.ConsumptionPerMeter}, nil
	case core.VehicleAckermann:
		return &Ackermann{
			Wheelbase:           cfg.Wheelbase,
			ConsumptionPerMeter: cfg.ConsumptionPerMeter,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidVehicleType, cfg.Model)
	}
}

// Differential is the unicycle model: the vehicle turns in place at rate
// omega while moving at speed v.
type Differential struct {
	ConsumptionPerMeter float64
}

func (m *Differential) Step(s core.RobotState, c Control, dt float64) core.RobotState {
	next := s
	next.X = s.X + c.V*math.Cos(s.Theta)*dt
	next.Y = s.Y + c.V*math.Sin(s.Theta)*dt
	next.Theta = NormalizeAngle(s.Theta + c.Omega*dt)
	next.V = c.V
	next.Phi = 0
	next.BatteryLevel = drain(s, next, m.ConsumptionPerMeter)
	return next
}

// Ackermann is the bicycle model: a front steering angle phi and a fixed
// wheelbase determine the turn radius.
type Ackermann struct {
	Wheelbase           float64
	ConsumptionPerMeter float64
}

func (m *Ackermann) Step(s core.RobotState, c Control, dt float64) core.RobotState {
	next := s
	next.X = s.X + c.V*math.Cos(s.Theta)*dt
	next.Y = s.Y + c.V*math.Sin(s.Theta)*dt
	next.Theta = NormalizeAngle(s.Theta + (c.V/m.Wheelbase)*math.Tan(c.Phi)*dt)
	next.V = c.V
	next.Phi = c.Phi
	next.BatteryLevel = drain(s, next, m.ConsumptionPerMeter)
	return next
}

// drain depletes the battery by the Euclidean displacement of this tick.
// The result is clamped at 0; the caller stops advancing once it is reached.
func drain(prev, next core.RobotState, consumptionPerMeter float64) float64 {
	dist := math.Hypot(next.X-prev.X, next.Y-prev.Y)
	level := prev.BatteryLevel - dist*consumptionPerMeter
	return math.Max(0, level)
}

// NormalizeAngle maps any angle onto (-pi, pi].
func NormalizeAngle(theta float64) float64 {
	return math.Atan2(math.Sin(theta), math.Cos(theta))
}
