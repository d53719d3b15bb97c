package planner

import (
	"encoding/json"
	"fmt"

	"github.com/agroscout/fieldsim/internal/geo"
	"github.com/agroscout/fieldsim/pkg/core"
)

// geoJSON is the strict tagged variant mission geometries are validated
// into. Only Polygon geometries and Feature envelopes wrapping a Polygon
// are accepted; anything else is rejected with core.ErrInvalidGeometry.
type geoJSON struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
	Geometry    *geoJSON      `json:"geometry"`
}

// ParseBoundary validates a GeoJSON-like Polygon (optionally wrapped in a
// Feature envelope) and projects its outer ring into the local frame
// anchored at ref. Vertices arrive in GeoJSON [lon, lat] order.
func ParseBoundary(raw json.RawMessage, ref core.GeoPoint) (core.Polygon, error) {
	var g geoJSON
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidGeometry, err)
	}

	geometry := &g
	if g.Type == "Feature" {
		if g.Geometry == nil {
			return nil, fmt.Errorf("%w: Feature has no geometry", core.ErrInvalidGeometry)
		}
		geometry = g.Geometry
	}

	if geometry.Type != "Polygon" {
		return nil, fmt.Errorf("%w: got type %q", core.ErrInvalidGeometry, geometry.Type)
	}
	if len(geometry.Coordinates) == 0 {
		return nil, fmt.Errorf("%w: Polygon has no rings", core.ErrInvalidGeometry)
	}

	outer := geometry.Coordinates[0]

	// GeoJSON rings repeat the first vertex to close the ring; our Polygon
	// is implicitly closed, so drop the duplicate.
	if n := len(outer); n > 1 && len(outer[0]) >= 2 && len(outer[n-1]) >= 2 &&
		outer[0][0] == outer[n-1][0] && outer[0][1] == outer[n-1][1] {
		outer = outer[:n-1]
	}

	if len(outer) < 3 {
		return nil, fmt.Errorf("%w: outer ring has %d vertices", core.ErrInvalidGeometry, len(outer))
	}

	polygon := make(core.Polygon, 0, len(outer))
	for i, vertex := range outer {
		if len(vertex) < 2 {
			return nil, fmt.Errorf("%w: vertex %d has insufficient values", core.ErrInvalidGeometry, i)
		}
		lon, lat := vertex[0], vertex[1]
		polygon = append(polygon, geo.ToLocal(lat, lon, ref.Lat, ref.Lon))
	}
	return polygon, nil
}
