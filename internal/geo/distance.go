// Package geo provides the great-circle distance math and the zoom-level
// radius table behind location-based zone search.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

// DistanceMeters returns the Haversine great-circle distance in meters
// between two points given in decimal degrees.
//
// Inputs are not validated here; coordinate bounds are checked at the
// request boundary before a search is run.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c * 1000
}

// DistanceKm is DistanceMeters converted to kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceMeters(lat1, lon1, lat2, lon2) / 1000
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
