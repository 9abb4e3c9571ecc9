// Package travel holds the discovery side of the product: traveler profiles,
// their published location, and connection requests between travelers.
package travel

import (
	"math"
)

const earthRadiusKm = 6371

type Location struct {
	Lat   float64
	Lng   float64
	City  string
	State string
}

// HasCoordinates is false for profiles that only published a city.
func (l Location) HasCoordinates() bool {
	return !(l.Lat == 0 && l.Lng == 0)
}

type Profile struct {
	ID        string
	Name      string
	Bio       string
	Languages []string
	Location  Location
}

// NearbyTraveler is a profile seen from the caller, with the distance when
// both sides published coordinates.
type NearbyTraveler struct {
	Profile
	DistanceKm *float64
}

// DistanceKm is the haversine great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

type NearbyQuery struct {
	CallerID string  `validate:"required"`
	City     string  `validate:"required"`
	State    string  `validate:"required"`
	RadiusKm float64 `validate:"gte=0"`
	// Exclude lists travelers the index must skip before capping the results.
	Exclude []string
}
