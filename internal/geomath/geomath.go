// Package geomath provides the coordinate and distance helpers used by the
// map view: great-circle distance, viewport zoom estimation and coordinate
// validation.
package geomath

import "github.com/umahmood/haversine"

// zoomSteps maps a bounding-box diagonal (km) to a zoom level. The table is a
// coarse heuristic, not a projection computation; thresholds are strict.
var zoomSteps = []struct {
	km   float64
	zoom int
}{
	{1000, 5},
	{500, 6},
	{250, 7},
	{100, 8},
	{50, 9},
	{25, 10},
	{10, 11},
	{5, 12},
	{2, 13},
	{1, 14},
	{0.5, 15},
	{0.25, 16},
}

// DistanceKm returns the great-circle distance in kilometers between two
// points given in degrees, using the haversine formula with an Earth radius
// of 6371 km. NaN or Inf inputs propagate into the result; no validation is
// performed here.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km
}

// ZoomLevel estimates a map zoom level (5-17) for a bounding box by measuring
// the haversine distance between its (minLat,minLon) and (maxLat,maxLon)
// corners and looking it up in the step table.
func ZoomLevel(minLat, maxLat, minLon, maxLon float64) int {
	return zoomFor(DistanceKm(minLat, minLon, maxLat, maxLon))
}

// zoomFor resolves a diagonal length against the step table. Thresholds are
// strict: a diagonal of exactly 1 km is not greater than 1, so it resolves
// one band closer (15, not 14).
func zoomFor(diagonalKm float64) int {
	for _, step := range zoomSteps {
		if diagonalKm > step.km {
			return step.zoom
		}
	}
	return 17
}

// IsValidCoordinate reports whether lat/lon fall inside the WGS 84 domain.
func IsValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
