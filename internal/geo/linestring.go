package geo

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/agroscout/fieldsim/pkg/core"
)

// PathLineString converts a planned path into a geom.LineString for storage.
// Geometry data is persisted in WKB, which needs a simplefeatures geometry.
func PathLineString(path core.Path) (geom.LineString, error) {
	if len(path) < 2 {
		return geom.LineString{}, fmt.Errorf("linestring needs at least 2 points, got %d", len(path))
	}

	flat := make([]float64, 0, len(path)*2)
	for _, p := range path {
		flat = append(flat, p.X, p.Y)
	}

	seq := geom.NewSequence(flat, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("linestring from %d points: %w", len(path), err)
	}
	return ls, nil
}
