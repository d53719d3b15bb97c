package world

import (
	"testing"

	"github.com/agroscout/fieldsim/pkg/core"
)

func box(minX, minY, maxX, maxY float64) core.Polygon {
	return core.Polygon{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
}

func TestObstacleSet_Empty(t *testing.T) {
	s := NewObstacleSet(nil)

	if s.Len() != 0 {
		t.Errorf("expected 0 obstacles, got %d", s.Len())
	}
	if got := s.Near(core.LocalPoint{X: 0, Y: 0}, 10); got != nil {
		t.Errorf("expected nil from empty set, got %v", got)
	}
}

func TestObstacleSet_AllAndLen(t *testing.T) {
	polys := []core.Polygon{
		box(0, 0, 1, 1),
		box(100, 100, 101, 101),
	}
	s := NewObstacleSet(polys)

	if s.Len() != 2 {
		t.Errorf("expected 2 obstacles, got %d", s.Len())
	}
	if len(s.All()) != 2 {
		t.Errorf("expected All to return 2 polygons, got %d", len(s.All()))
	}
}

func TestObstacleSet_NearFiltersByDistance(t *testing.T) {
	near := box(5, 5, 6, 6)
	far := box(500, 500, 501, 501)
	s := NewObstacleSet([]core.Polygon{near, far})

	got := s.Near(core.LocalPoint{X: 0, Y: 0}, 10)
	if len(got) != 1 {
		t.Fatalf("expected 1 nearby obstacle, got %d", len(got))
	}
	if got[0][0] != near[0] {
		t.Errorf("expected the near box, got %+v", got[0])
	}
}

func TestObstacleSet_NearIncludesTouchingBox(t *testing.T) {
	// Bounding box intersection is inclusive: a box whose edge touches the
	// search square is a candidate. Callers do the exact geometry test.
	s := NewObstacleSet([]core.Polygon{box(10, -1, 12, 1)})

	got := s.Near(core.LocalPoint{X: 0, Y: 0}, 10)
	if len(got) != 1 {
		t.Errorf("expected touching box as candidate, got %d", len(got))
	}
}

func TestObstacleSet_DegenerateGeometry(t *testing.T) {
	// Zero-area polygons (a point, a vertical segment) still index.
	point := core.Polygon{{X: 5, Y: 5}}
	segment := core.Polygon{{X: 7, Y: 0}, {X: 7, Y: 3}}
	s := NewObstacleSet([]core.Polygon{point, segment})

	if s.Len() != 2 {
		t.Fatalf("expected 2 obstacles, got %d", s.Len())
	}
	got := s.Near(core.LocalPoint{X: 6, Y: 2}, 5)
	if len(got) != 2 {
		t.Errorf("expected both degenerate obstacles nearby, got %d", len(got))
	}
}
