// Package geometry provides the pairwise geographic calculations that feed
// the conflict engine: flat-Earth bearing/distance between aircraft in a
// window, plus great-circle helpers for coarse region filtering.
package geometry

import (
	"math"
)

// Constants for coordinate calculations
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// EarthRadiusMeters is the Earth's mean radius in meters (WGS84)
	EarthRadiusMeters = 6371000.0

	// FeetToMeters converts feet to meters
	FeetToMeters = 0.3048

	// MetersToNauticalMiles converts meters to nautical miles
	MetersToNauticalMiles = 1.0 / 1852.0
)

// Geographic represents a position on Earth's surface.
// Uses the WGS84 coordinate system (same as GPS).
type Geographic struct {
	// Latitude in decimal degrees (-90 to +90)
	// Positive = North, Negative = South
	Latitude float64

	// Longitude in decimal degrees (-180 to +180)
	// Positive = East, Negative = West
	Longitude float64
}

// FlatEarth computes the bearing and distance from one point to another using
// the flat-Earth approximation: lat/lon deltas in radians, an average-latitude
// cosine correction for longitude scale, and a Euclidean combination scaled by
// the Earth radius. Valid at the short taxi/terminal-area ranges this system
// targets; it is not a substitute for a geodesic solver.
//
// The bearing is in radians, 0 at north, clockwise, normalized to [0, 2π).
// The distance is in meters.
func FlatEarth(from, to Geographic) (bearing, distance float64) {
	dlat := (to.Latitude - from.Latitude) * DegreesToRadians
	dlon := (to.Longitude - from.Longitude) * DegreesToRadians
	cavelat := math.Cos((from.Latitude + to.Latitude) * 0.5 * DegreesToRadians)

	dangle := math.Sqrt(dlat*dlat + dlon*dlon*cavelat*cavelat)
	distance = EarthRadiusMeters * dangle

	bearing = math.Atan2(dlon*cavelat, dlat)
	if bearing < 0 {
		bearing += 2 * math.Pi
	}

	return bearing, distance
}

// Bearing calculates the initial bearing (forward azimuth) from one point to
// another along a great circle.
// Returns bearing in degrees (0-360), where 0/360 = North, 90 = East.
func Bearing(from, to Geographic) float64 {
	lat1 := from.Latitude * DegreesToRadians
	lon1 := from.Longitude * DegreesToRadians
	lat2 := to.Latitude * DegreesToRadians
	lon2 := to.Longitude * DegreesToRadians

	dLon := lon2 - lon1
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bearing := math.Atan2(y, x) * RadiansToDegrees

	// Normalize to 0-360
	if bearing < 0 {
		bearing += 360
	}

	return bearing
}

// DistanceMeters calculates the great-circle distance between two points
// using the Haversine formula. Used for coarse region filtering where the
// flat-Earth approximation is not appropriate (e.g. collection radii of
// hundreds of nautical miles).
func DistanceMeters(from, to Geographic) float64 {
	lat1 := from.Latitude * DegreesToRadians
	lon1 := from.Longitude * DegreesToRadians
	lat2 := to.Latitude * DegreesToRadians
	lon2 := to.Longitude * DegreesToRadians

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DistanceNauticalMiles calculates the great-circle distance between two
// points in nautical miles.
func DistanceNauticalMiles(from, to Geographic) float64 {
	return DistanceMeters(from, to) * MetersToNauticalMiles
}
