package sensors

import (
	"math"

	"github.com/agroscout/fieldsim/pkg/core"
)

// farPointDistance substitutes for corner rays that never reach the ground
// (pointing at or above the horizon). Downstream consumers rely on every
// footprint having exactly 4 corners, so such rays yield a far point along
// the ray instead of being omitted. These are not ground contact points.
const farPointDistance = 100.0

type vec3 struct{ x, y, z float64 }

func (v vec3) cross(o vec3) vec3 {
	return vec3{
		x: v.y*o.z - v.z*o.y,
		y: v.z*o.x - v.x*o.z,
		z: v.x*o.y - v.y*o.x,
	}
}

func (v vec3) scale(s float64) vec3 { return vec3{v.x * s, v.y * s, v.z * s} }

func (v vec3) norm() vec3 {
	l := math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
	if l == 0 {
		return v
	}
	return v.scale(1 / l)
}

// CameraFootprint projects the four view-frustum corner rays onto the ground
// plane z = 0 and returns the footprint quadrilateral. The camera sits
// Height meters above the vehicle origin, yawed with the vehicle heading and
// pitched down by PitchDeg with zero roll.
func (s *Simulator) CameraFootprint(state core.RobotState) core.Polygon {
	cfg := s.camera

	hFov := cfg.HFovDeg * math.Pi / 180
	vFov := 2 * math.Atan(math.Tan(hFov/2)/cfg.AspectRatio)

	halfH := math.Tan(hFov / 2)
	halfV := math.Tan(vFov / 2)

	// Camera frame: X right, Y down, Z forward (look direction).
	corners := [4]vec3{
		{-halfH, -halfV, 1}, // top-left
		{halfH, -halfV, 1},  // top-right
		{halfH, halfV, 1},   // bottom-right
		{-halfH, halfV, 1},  // bottom-left
	}

	yaw := state.Theta
	pitch := cfg.PitchDeg * math.Pi / 180
	cy, sy := math.Cos(yaw), math.Sin(yaw)
	cp, sp := math.Cos(pitch), math.Sin(pitch)

	// World basis from heading and pitch, zero roll.
	look := vec3{cp * cy, cp * sy, sp}
	right := vec3{sy, -cy, 0}
	up := right.cross(look)

	camPos := vec3{state.X, state.Y, cfg.Height}

	footprint := make(core.Polygon, 0, 4)
	for _, c := range corners {
		// Columns of the camera-to-world rotation: right, -up, look.
		ray := vec3{
			x: right.x*c.x - up.x*c.y + look.x*c.z,
			y: right.y*c.x - up.y*c.y + look.y*c.z,
			z: right.z*c.x - up.z*c.y + look.z*c.z,
		}
		ray = ray.norm()

		var ground vec3
		if math.Abs(ray.z) > epsilon {
			if t := -camPos.z / ray.z; t > 0 {
				ground = vec3{camPos.x + t*ray.x, camPos.y + t*ray.y, 0}
			} else {
				// Ray points at or above the horizon.
				ground = vec3{
					camPos.x + farPointDistance*ray.x,
					camPos.y + farPointDistance*ray.y,
					0,
				}
			}
		} else {
			// Parallel to the ground.
			ground = vec3{
				camPos.x + farPointDistance*ray.x,
				camPos.y + farPointDistance*ray.y,
				0,
			}
		}
		footprint = append(footprint, core.LocalPoint{X: ground.x, Y: ground.y})
	}
	return footprint
}
