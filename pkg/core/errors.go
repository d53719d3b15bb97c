// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when a boundary or obstacle geometry is not
// Polygon-typed or its outer ring has fewer than 3 vertices. A boundary
// failure is fatal to the mission; obstacle failures are dropped per-obstacle.
var ErrInvalidGeometry = errors.New("invalid geometry: expected Polygon with at least 3 vertices")

// ErrInvalidVehicleType is returned for any vehicle model other than
// "differential" or "ackermann". Surfaced before any simulation work begins.
var ErrInvalidVehicleType = errors.New("invalid vehicle type")

// NoPathError is returned when planning yields an empty path.
type NoPathError struct {
	Reason string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path generated: %s", e.Reason)
}
