package planner

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroscout/fieldsim/pkg/core"
)

var origin = core.GeoPoint{Lat: 0, Lon: 0}

func TestParseBoundary_Polygon(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "Polygon",
		"coordinates": [[[0,0],[0.001,0],[0.001,0.001],[0,0.001],[0,0]]]
	}`)

	poly, err := ParseBoundary(raw, origin)
	require.NoError(t, err)

	// Closing duplicate is dropped.
	require.Len(t, poly, 4)

	// GeoJSON vertices are [lon, lat]: the second vertex is east of the
	// origin, not north.
	assert.Greater(t, poly[1].X, 0.0)
	assert.InDelta(t, 0.0, poly[1].Y, 1e-9)
}

func TestParseBoundary_FeatureEnvelope(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "Feature",
		"properties": {"name": "field 7"},
		"geometry": {
			"type": "Polygon",
			"coordinates": [[[0,0],[0.001,0],[0,0.001],[0,0]]]
		}
	}`)

	poly, err := ParseBoundary(raw, origin)
	require.NoError(t, err)
	assert.Len(t, poly, 3)
}

func TestParseBoundary_FeatureWithoutGeometry(t *testing.T) {
	raw := json.RawMessage(`{"type": "Feature"}`)

	_, err := ParseBoundary(raw, origin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidGeometry))
}

func TestParseBoundary_RejectsNonPolygon(t *testing.T) {
	for _, raw := range []string{
		`{"type": "Point", "coordinates": [[[0,0]]]}`,
		`{"type": "LineString", "coordinates": [[[0,0],[1,1]]]}`,
		`{"type": "MultiPolygon", "coordinates": [[[0,0],[1,1],[0,1]]]}`,
	} {
		_, err := ParseBoundary(json.RawMessage(raw), origin)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, core.ErrInvalidGeometry), raw)
	}
}

func TestParseBoundary_TooFewVertices(t *testing.T) {
	// Two distinct vertices plus the closing duplicate.
	raw := json.RawMessage(`{
		"type": "Polygon",
		"coordinates": [[[0,0],[0.001,0],[0,0]]]
	}`)

	_, err := ParseBoundary(raw, origin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidGeometry))
}

func TestParseBoundary_MalformedJSON(t *testing.T) {
	_, err := ParseBoundary(json.RawMessage(`{not json`), origin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidGeometry))
}

func TestParseBoundary_ShortVertex(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "Polygon",
		"coordinates": [[[0,0],[0.001],[0,0.001]]]
	}`)

	_, err := ParseBoundary(raw, origin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidGeometry))
}

func TestParseBoundary_UnclosedRingAccepted(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "Polygon",
		"coordinates": [[[0,0],[0.001,0],[0.001,0.001],[0,0.001]]]
	}`)

	poly, err := ParseBoundary(raw, origin)
	require.NoError(t, err)
	assert.Len(t, poly, 4)
}
