package sensors

import (
	"math"

	"github.com/agroscout/fieldsim/pkg/core"
)

// epsilon rejects near-parallel ray/segment pairs.
const epsilon = 1e-6

// Lidar casts NumRays rays evenly spaced over FovDeg centered on the current
// heading and returns the closest hit point per ray. Rays that hit nothing
// within MaxRange contribute no point.
//
// This is the performance-critical path of the simulation: cost is
// O(NumRays x total obstacle edges) per call. The R-tree prefilter only
// trims obstacles entirely outside the scan range; it does not change the
// worst case.
func (s *Simulator) Lidar(state core.RobotState) []core.LocalPoint {
	candidates := s.obstacles.Near(core.LocalPoint{X: state.X, Y: state.Y}, s.lidar.MaxRange)
	if len(candidates) == 0 {
		return nil
	}

	var segments [][2]core.LocalPoint
	for _, obs := range candidates {
		n := len(obs)
		for i := 0; i < n; i++ {
			segments = append(segments, [2]core.LocalPoint{obs[i], obs[(i+1)%n]})
		}
	}

	fov := s.lidar.FovDeg * math.Pi / 180
	angleStep := fov / float64(s.lidar.NumRays)
	startAngle := state.Theta - fov/2
	origin := core.LocalPoint{X: state.X, Y: state.Y}

	var hits []core.LocalPoint
	for i := 0; i < s.lidar.NumRays; i++ {
		angle := startAngle + float64(i)*angleStep
		dir := core.LocalPoint{X: math.Cos(angle), Y: math.Sin(angle)}

		closest := s.lidar.MaxRange
		found := false
		for _, seg := range segments {
			if t, ok := raySegment(origin, dir, seg[0], seg[1], closest); ok {
				closest = t
				found = true
			}
		}
		if found {
			hits = append(hits, core.LocalPoint{
				X: origin.X + dir.X*closest,
				Y: origin.Y + dir.Y*closest,
			})
		}
	}
	return hits
}

// raySegment is the standard parametric r x s determinant intersection test.
// dir must be unit length so t is a distance. Returns the hit distance when
// 0 <= t <= maxDist and the segment parameter u is within [0, 1].
func raySegment(origin, dir, p1, p2 core.LocalPoint, maxDist float64) (float64, bool) {
	sx := p2.X - p1.X
	sy := p2.Y - p1.Y

	rCrossS := dir.X*sy - dir.Y*sx
	if math.Abs(rCrossS) < epsilon {
		return 0, false
	}

	qpx := p1.X - origin.X
	qpy := p1.Y - origin.Y

	t := (qpx*sy - qpy*sx) / rCrossS
	u := (qpx*dir.Y - qpy*dir.X) / rCrossS

	if t >= 0 && t <= maxDist && u >= 0 && u <= 1 {
		return t, true
	}
	return 0, false
}
