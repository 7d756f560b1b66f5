package services

import "math"

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between
// two points given in degrees. The asin argument is clamped so
// floating-point rounding near antipodal or identical points cannot
// push it outside [0, 1].
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	root := math.Sqrt(a)
	if root > 1 {
		root = 1
	}
	return 2 * earthRadiusKm * math.Asin(root)
}
