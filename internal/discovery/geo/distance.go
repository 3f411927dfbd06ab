// internal/discovery/geo/distance.go

// Package geo provides great-circle distance computation for radius searches.
package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm computes the great-circle distance between two points in
// kilometers using the Haversine formula.
//
// Inputs must be finite with latitude in [-90, 90] and longitude in
// [-180, 180]; behavior is undefined outside that range. Non-finite inputs
// propagate NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
