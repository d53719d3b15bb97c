package geo

import (
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/agroscout/fieldsim/pkg/core"
)

// Flat-earth local tangent plane projection. Valid for mission areas up to
// tens of kilometers across; no curvature correction beyond the cos(lat)
// meridian-convergence term.

// EarthRadius is the spherical Earth radius used by the local projection, in meters.
const EarthRadius = 6371000.0

// ToLocal projects a geodetic coordinate into the local planar frame anchored
// at the reference point. X grows east, Y grows north.
func ToLocal(lat, lon, refLat, refLon float64) core.LocalPoint {
	x := EarthRadius * radians(lon-refLon) * math.Cos(radians(refLat))
	y := EarthRadius * radians(lat-refLat)
	return core.LocalPoint{X: x, Y: y}
}

// ToGeo is the exact algebraic inverse of ToLocal.
func ToGeo(x, y, refLat, refLon float64) core.GeoPoint {
	lon := refLon + degrees(x/(EarthRadius*math.Cos(radians(refLat))))
	lat := refLat + degrees(y/EarthRadius)
	return core.GeoPoint{Lat: lat, Lon: lon}
}

// Coords3857 converts a WGS84 longitude/latitude into an EPSG:3857 point.
// Persisted positions are always stored as 3857 so map frontends can consume
// them without a spatial database.
func Coords3857(longitude, latitude float64) (geom.Point, error) {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(longitude, latitude, 0)
	pt, err := geom.NewPoint(geom.Coordinates{
		XY: geom.XY{X: x, Y: y},
		Z:  0,
	})
	if err != nil {
		return geom.Point{}, fmt.Errorf("3857 point from (%f, %f): %w", longitude, latitude, err)
	}
	return pt, nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
