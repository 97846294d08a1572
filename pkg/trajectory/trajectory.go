// Package trajectory ingests ground-movement trajectory records, groups them
// into fixed-width analysis windows, and feeds them through the conflict
// engine. It owns the input boundary: validation, status inference, and the
// CSV/JSONL encodings of datasets and results.
package trajectory

import (
	"math"
	"time"

	"github.com/unklstewy/groundscope/pkg/geometry"
	"github.com/unklstewy/groundscope/pkg/performance"
	"github.com/unklstewy/groundscope/pkg/ssd"
)

// Sample is one trajectory record: a single aircraft state observation.
type Sample struct {
	// Time the observation was recorded (UTC)
	Time time.Time

	// Callsign is the flight number or registration; unique per aircraft
	// within a window
	Callsign string

	// Latitude in decimal degrees (-90 to +90)
	Latitude float64

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64

	// TAS is true airspeed in knots
	TAS float64

	// Heading in degrees (0 = North, 90 = East)
	Heading float64

	// Status is the flight phase (PUSHBACK, TAXI, ...). Empty means
	// unreported; Clean infers it from speed.
	Status string
}

// Valid reports whether the sample carries a usable position and speed.
func (s Sample) Valid() bool {
	return !math.IsNaN(s.Latitude) && !math.IsNaN(s.Longitude) &&
		!math.IsNaN(s.TAS) && !math.IsNaN(s.Heading) &&
		s.Latitude >= -90 && s.Latitude <= 90 &&
		s.Callsign != ""
}

// InferStatus classifies a flight phase from true airspeed, for records that
// arrive without one. The thresholds follow the surface-movement
// classification of the ingest feeds:
//
//	tas ≤ 4        PUSHBACK
//	4 < tas ≤ 30   TAXI
//	30 < tas ≤ 200 TAKEOFF/LANDING
//
// Speeds above 200 kt are enroute traffic this system does not model; ok is
// false and the record is dropped.
func InferStatus(tas float64) (status string, ok bool) {
	switch {
	case tas <= 4:
		return "PUSHBACK", true
	case tas <= 30:
		return "TAXI", true
	case tas <= 200:
		return "TAKEOFF/LANDING", true
	default:
		return "", false
	}
}

// Clean drops samples without a usable position or speed, and fills in
// missing statuses by speed inference. Samples whose status cannot be
// inferred are dropped as well. Input-validity failures are not errors;
// they simply never reach the core.
func Clean(samples []Sample) []Sample {
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if !s.Valid() {
			continue
		}
		if s.Status == "" {
			status, ok := InferStatus(s.TAS)
			if !ok {
				continue
			}
			s.Status = status
		}
		out = append(out, s)
	}
	return out
}

// States converts one window's samples into the engine's state and envelope
// slices. Velocity components are derived from heading and speed; envelopes
// come from the performance table keyed by status.
func States(samples []Sample) ([]ssd.State, []performance.Envelope) {
	states := make([]ssd.State, len(samples))
	envs := make([]performance.Envelope, len(samples))
	for i, s := range samples {
		states[i] = ssd.State{
			Time:     s.Time,
			Callsign: s.Callsign,
			Position: geometry.Geographic{Latitude: s.Latitude, Longitude: s.Longitude},
			Velocity: ssd.VelocityFromTrack(s.TAS, s.Heading),
		}
		envs[i] = performance.Lookup(s.Status)
	}
	return states, envs
}
