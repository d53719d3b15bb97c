package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/agroscout/fieldsim/pkg/core"
)

// Segment is a single coverage swath: one straight pass across the field.
type Segment struct {
	Start core.LocalPoint
	End   core.LocalPoint
}

// GenerateSwaths computes parallel coverage passes spaced width meters apart.
// The boundary is rotated by -angleDeg so the requested pass direction aligns
// with the local X axis, scanned with horizontal lines starting at
// minY + width/2, and each scan line is clipped against the boundary edges.
// Concave boundaries may yield several disjoint segments per scan line.
func GenerateSwaths(boundary core.Polygon, width, angleDeg float64) ([]Segment, error) {
	if width <= 0 {
		return nil, fmt.Errorf("swath width must be greater than 0, got %v", width)
	}

	angle := -angleDeg * math.Pi / 180
	rotated := make(core.Polygon, len(boundary))
	for i, v := range boundary {
		rotated[i] = rotate(v, angle)
	}

	min, max := rotated.Bounds()

	var swaths []Segment
	n := len(rotated)
	for y := min.Y + width/2; y < max.Y; y += width {
		var xs []float64
		for i := 0; i < n; i++ {
			p1 := rotated[i]
			p2 := rotated[(i+1)%n]
			// Half-open test so scan lines passing exactly through a vertex
			// count the crossing once.
			if (p1.Y <= y && y < p2.Y) || (p2.Y <= y && y < p1.Y) {
				if p1.Y != p2.Y {
					xs = append(xs, p1.X+(y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y))
				}
			}
		}
		sort.Float64s(xs)

		// Consecutive pairs are inside intervals.
		for i := 0; i+1 < len(xs); i += 2 {
			swaths = append(swaths, Segment{
				Start: rotate(core.LocalPoint{X: xs[i], Y: y}, -angle),
				End:   rotate(core.LocalPoint{X: xs[i+1], Y: y}, -angle),
			})
		}
	}
	return swaths, nil
}

// Boustrophedon builds a serpentine coverage path from the swaths, reversing
// every other pass so the vehicle exits each swath next to the start of the
// following one.
func Boustrophedon(boundary core.Polygon, width, angleDeg float64) (core.Path, error) {
	swaths, err := GenerateSwaths(boundary, width, angleDeg)
	if err != nil {
		return nil, err
	}

	path := make(core.Path, 0, len(swaths)*2)
	for i, s := range swaths {
		if i%2 == 0 {
			path = append(path, s.Start, s.End)
		} else {
			path = append(path, s.End, s.Start)
		}
	}
	return path, nil
}

func rotate(p core.LocalPoint, angle float64) core.LocalPoint {
	c, s := math.Cos(angle), math.Sin(angle)
	return core.LocalPoint{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}
