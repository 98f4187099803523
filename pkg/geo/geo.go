// Package geo provides the spatial primitives shared by the reference store
// and the geofence caches: great-circle distance, unit conversions, and the
// degree bounding boxes used as coarse spatial pre-filters.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const (
	// MetersPerNM is the length of one nautical mile in meters.
	MetersPerNM = 1852.0

	// nmPerDegreeLat: one minute of latitude is one nautical mile.
	nmPerDegreeLat = 60.0

	// minLonScale clamps the longitude widening factor so that boxes stay
	// finite near the poles.
	minLonScale = 0.01
)

// Point builds an orb.Point from latitude/longitude in degrees.
// orb stores coordinates in (lon, lat) order.
func Point(lat, lon float64) orb.Point {
	return orb.Point{lon, lat}
}

// DistanceMeters returns the great-circle (haversine) distance between two
// points in meters.
func DistanceMeters(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b)
}

// DistanceNM returns the great-circle distance between two points in
// nautical miles.
func DistanceNM(a, b orb.Point) float64 {
	return DistanceMeters(a, b) / MetersPerNM
}

// DegreeBound converts a radius in nautical miles around a center point into
// a latitude/longitude bounding box. Longitude degrees shrink with latitude,
// so the box is widened by 1/cos(lat), clamped to avoid blow-up near the
// poles. The result over-approximates the true circle; callers needing exact
// distance must post-filter.
func DegreeBound(center orb.Point, radiusNM float64) orb.Bound {
	dLat := radiusNM / nmPerDegreeLat

	scale := math.Cos(center.Lat() * math.Pi / 180.0)
	if scale < minLonScale {
		scale = minLonScale
	}
	dLon := dLat / scale

	return orb.Bound{
		Min: orb.Point{center.Lon() - dLon, center.Lat() - dLat},
		Max: orb.Point{center.Lon() + dLon, center.Lat() + dLat},
	}
}
