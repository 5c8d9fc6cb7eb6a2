package utils

import (
	"math"

	"boulder-session-system/models"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two lat/lng pairs in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceToGym returns the distance from origin to gym, or nil when either
// side lacks coordinates or the result is not finite.
func DistanceToGym(origin *models.GeoPoint, gym models.Gym) *float64 {
	if origin == nil || !gym.HasCoordinates() {
		return nil
	}
	d := HaversineKm(origin.Lat, origin.Lng, *gym.Lat, *gym.Lng)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return nil
	}
	return &d
}
