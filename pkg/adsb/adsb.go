// Package adsb provides live aircraft snapshots from ADS-B aggregator APIs,
// for feeding the conflict engine with real-time surface traffic.
package adsb

import (
	"context"
	"time"

	"github.com/unklstewy/groundscope/pkg/trajectory"
)

// Aircraft is one aircraft state as reported by an ADS-B source.
// All position data is in WGS84.
type Aircraft struct {
	// ICAO is the unique 24-bit ICAO aircraft address (e.g., "A12345")
	ICAO string

	// Callsign is the flight number or aircraft registration
	Callsign string

	// Latitude in decimal degrees (-90 to +90)
	Latitude float64

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64

	// GroundSpeed in knots
	GroundSpeed float64

	// Track is the ground track in degrees (0-359)
	// 0 = North, 90 = East, 180 = South, 270 = West
	Track float64

	// OnGround is true when the transponder reports the aircraft on the
	// surface (alt_baro = "ground")
	OnGround bool

	// LastSeen is the timestamp of the last position update
	LastSeen time.Time
}

// Source is the interface ADS-B data providers implement. The abstraction
// allows switching between aggregator APIs and local SDR receivers.
type Source interface {
	// Snapshot returns all aircraft within radiusNM nautical miles of the
	// given center, as one coherent point-in-time set.
	Snapshot(ctx context.Context, centerLat, centerLon, radiusNM float64) ([]Aircraft, error)

	// Close cleanly shuts down the data source connection.
	Close() error
}

// ToSamples converts a snapshot into trajectory samples stamped at the given
// time, ready for analysis. Aircraft without a callsign fall back to their
// ICAO address so every record stays identifiable within the window. Status
// is left empty; the ingest cleaning step infers it from speed.
func ToSamples(aircraft []Aircraft, at time.Time) []trajectory.Sample {
	samples := make([]trajectory.Sample, 0, len(aircraft))
	for _, ac := range aircraft {
		callsign := ac.Callsign
		if callsign == "" {
			callsign = ac.ICAO
		}
		samples = append(samples, trajectory.Sample{
			Time:      at,
			Callsign:  callsign,
			Latitude:  ac.Latitude,
			Longitude: ac.Longitude,
			TAS:       ac.GroundSpeed,
			Heading:   ac.Track,
		})
	}
	return samples
}
