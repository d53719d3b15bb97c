// Package world holds the read-only obstacle geometry for a mission run,
// indexed in an R-tree so sensors can fetch the obstacles near the vehicle
// without walking the whole set.
package world

import (
	"github.com/dhconnelly/rtreego"

	"github.com/agroscout/fieldsim/pkg/core"
)

const (
	dimensions  = 2
	minChildren = 2
	maxChildren = 8

	// minExtent pads degenerate bounding boxes; rtreego rejects
	// zero-length rectangle sides.
	minExtent = 1e-9
)

// obstacleItem wraps a polygon for R-tree indexing.
type obstacleItem struct {
	poly core.Polygon
	rect *rtreego.Rect
}

func (o *obstacleItem) Bounds() *rtreego.Rect { return o.rect }

// ObstacleSet is an immutable collection of obstacle polygons.
type ObstacleSet struct {
	tree  *rtreego.Rtree
	polys []core.Polygon
}

// NewObstacleSet indexes the given polygons. The set does not copy the
// polygons; they must not be mutated for the lifetime of the run.
func NewObstacleSet(polys []core.Polygon) *ObstacleSet {
	s := &ObstacleSet{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		polys: polys,
	}
	for _, p := range polys {
		min, max := p.Bounds()
		rect, err := rtreego.NewRect(
			rtreego.Point{min.X, min.Y},
			[]float64{
				maxf(max.X-min.X, minExtent),
				maxf(max.Y-min.Y, minExtent),
			},
		)
		if err != nil {
			continue
		}
		s.tree.Insert(&obstacleItem{poly: p, rect: rect})
	}
	return s
}

// All returns every obstacle polygon.
func (s *ObstacleSet) All() []core.Polygon {
	return s.polys
}

// Len returns the number of obstacles.
func (s *ObstacleSet) Len() int {
	return len(s.polys)
}

// Near returns the obstacles whose bounding box intersects the square of
// half-size radius centered on p, including boxes that only touch its edge.
// This is a prefilter: callers still test exact geometry against the
// returned polygons. The query rectangle is padded because SearchIntersect
// treats shared edges as disjoint.
func (s *ObstacleSet) Near(p core.LocalPoint, radius float64) []core.Polygon {
	if len(s.polys) == 0 {
		return nil
	}
	bounds, err := rtreego.NewRect(
		rtreego.Point{p.X - radius - minExtent, p.Y - radius - minExtent},
		[]float64{2 * (radius + minExtent), 2 * (radius + minExtent)},
	)
	if err != nil {
		return s.polys
	}
	results := s.tree.SearchIntersect(bounds)
	polys := make([]core.Polygon, 0, len(results))
	for _, r := range results {
		polys = append(polys, r.(*obstacleItem).poly)
	}
	return polys
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
