package kinematics

import (
	"errors"
	"math"
	"testing"

	"github.com/agroscout/fieldsim/pkg/core"
)

func TestNew_Differential(t *testing.T) {
	m, err := New(core.VehicleConfig{Model: core.VehicleDifferential})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*Differential); !ok {
		t.Fatalf("expected *Differential, got %T", m)
	}
}

func TestNew_Ackermann(t *testing.T) {
	m, err := New(core.VehicleConfig{Model: core.VehicleAckermann, Wheelbase: 1.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := m.(*Ackermann)
	if !ok {
		t.Fatalf("expected *Ackermann, got %T", m)
	}
	if a.Wheelbase != 1.2 {
		t.Errorf("expected wheelbase 1.2, got %f", a.Wheelbase)
	}
}

func TestNew_UnknownModel(t *testing.T) {
	_, err := New(core.VehicleConfig{Model: "hovercraft"})
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	if !errors.Is(err, core.ErrInvalidVehicleType) {
		t.Errorf("expected ErrInvalidVehicleType, got %v", err)
	}
}

func TestDifferential_StraightLine(t *testing.T) {
	m := &Differential{ConsumptionPerMeter: 0.5}
	s := core.RobotState{BatteryLevel: 100}

	next := m.Step(s, Control{V: 1}, 1)

	if math.Abs(next.X-1) > 1e-9 {
		t.Errorf("expected X=1, got %f", next.X)
	}
	if next.Y != 0 {
		t.Errorf("expected Y=0, got %f", next.Y)
	}
	if next.Theta != 0 {
		t.Errorf("expected unchanged heading, got %f", next.Theta)
	}
	if math.Abs(next.BatteryLevel-99.5) > 1e-9 {
		t.Errorf("expected battery 99.5, got %f", next.BatteryLevel)
	}
}

func TestDifferential_TurnInPlace(t *testing.T) {
	m := &Differential{}
	s := core.RobotState{BatteryLevel: 100}

	next := m.Step(s, Control{V: 0, Omega: math.Pi / 2}, 1)

	if math.Abs(next.Theta-math.Pi/2) > 1e-9 {
		t.Errorf("expected heading pi/2, got %f", next.Theta)
	}
	if next.X != 0 || next.Y != 0 {
		t.Errorf("expected no translation, got (%f,%f)", next.X, next.Y)
	}
	// Zero displacement drains nothing.
	if next.BatteryLevel != 100 {
		t.Errorf("expected battery 100, got %f", next.BatteryLevel)
	}
}

func TestDifferential_HeadingStaysNormalized(t *testing.T) {
	m := &Differential{}
	s := core.RobotState{BatteryLevel: 100}

	for i := 0; i < 1000; i++ {
		s = m.Step(s, Control{V: 0.1, Omega: 0.7}, 0.1)
		if s.Theta <= -math.Pi || s.Theta > math.Pi {
			t.Fatalf("heading left (-pi, pi] at step %d: %f", i, s.Theta)
		}
	}
}

func TestAckermann_StraightAndTurn(t *testing.T) {
	m := &Ackermann{Wheelbase: 2}
	s := core.RobotState{BatteryLevel: 100}

	straight := m.Step(s, Control{V: 1, Phi: 0}, 1)
	if straight.Theta != 0 {
		t.Errorf("expected no turn with zero steering, got %f", straight.Theta)
	}

	turned := m.Step(s, Control{V: 1, Phi: 0.3}, 1)
	want := math.Tan(0.3) / 2
	if math.Abs(turned.Theta-want) > 1e-9 {
		t.Errorf("expected heading %f, got %f", want, turned.Theta)
	}
	if turned.Phi != 0.3 {
		t.Errorf("expected steering angle recorded, got %f", turned.Phi)
	}
}

func TestBattery_MonotoneAndClamped(t *testing.T) {
	m := &Differential{ConsumptionPerMeter: 10}
	s := core.RobotState{BatteryLevel: 25}

	prev := s.BatteryLevel
	for i := 0; i < 10; i++ {
		s = m.Step(s, Control{V: 1}, 1)
		if s.BatteryLevel > prev {
			t.Fatalf("battery increased at step %d: %f -> %f", i, prev, s.BatteryLevel)
		}
		if s.BatteryLevel < 0 {
			t.Fatalf("battery went negative at step %d: %f", i, s.BatteryLevel)
		}
		prev = s.BatteryLevel
	}
	if s.BatteryLevel != 0 {
		t.Errorf("expected battery clamped to 0, got %f", s.BatteryLevel)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		got := NormalizeAngle(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%f): expected %f, got %f", c.in, c.want, got)
		}
	}
}
