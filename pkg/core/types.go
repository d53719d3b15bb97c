// pkg/core/types.go
package core

// GeoPoint is a geodetic coordinate in degrees (WGS84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocalPoint is a planar coordinate in meters, relative to the mission origin.
type LocalPoint struct {
	X float64 `json:"x"` // easting
	Y float64 `json:"y"` // northing
}

// Polygon is an ordered ring of vertices, implicitly closed (the last vertex
// connects back to the first). A valid Polygon has at least 3 vertices.
type Polygon []LocalPoint

// Path is an open polyline the vehicle is expected to follow in order.
type Path []LocalPoint

// Bounds returns the axis-aligned bounding box of the polygon.
// Calling Bounds on an empty polygon returns two zero points.
func (p Polygon) Bounds() (min, max LocalPoint) {
	if len(p) == 0 {
		return LocalPoint{}, LocalPoint{}
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
	}
	return min, max
}

// Pose is the vehicle position and heading in the local frame.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"` // radians, normalized to (-pi, pi]
}

// RobotState is the full mutable vehicle state advanced each tick.
// Theta is always normalized to (-pi, pi]. BatteryLevel stays within
// [0, 100] and never increases during a mission.
type RobotState struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Theta        float64 `json:"theta"`
	V            float64 `json:"v"`   // commanded forward speed, m/s
	Phi          float64 `json:"phi"` // steering angle (ackermann only), radians
	BatteryLevel float64 `json:"batteryLevel"`
}

// Pose returns the pose portion of the state.
func (s RobotState) Pose() Pose {
	return Pose{X: s.X, Y: s.Y, Theta: s.Theta}
}
