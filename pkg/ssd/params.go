package ssd

import "time"

// DefaultADSBRangeMeters is the sensor horizon beyond which neighbors are
// ignored: 65 statute miles expressed in meters, matching typical surface
// ADS-B receiver coverage.
const DefaultADSBRangeMeters = 65 * 5280 * 0.3048

// DefaultRingSamples is the angular sampling resolution of the reachable
// velocity ring (2° steps).
const DefaultRingSamples = 180

// Params carries every tunable the conflict engine uses. One immutable value
// is passed at construction; nothing reads package-level state.
type Params struct {
	// LookaheadSeconds sets the analysis window width: samples are grouped
	// into windows of LookaheadSeconds × 1000 ms.
	LookaheadSeconds float64

	// RingSamples is the number of vertices per reachable-velocity circle.
	RingSamples int

	// ADSBRangeMeters is the neighbor sensor horizon in meters.
	ADSBRangeMeters float64

	// Workers is the number of concurrent per-aircraft computations inside a
	// window. Values below 2 run serially. Aircraft are independent (each
	// owns its clip engine and scratch polygons; the pair matrix is
	// read-only), so no locking is involved.
	Workers int
}

// DefaultParams returns the adopted engine constants.
func DefaultParams() Params {
	return Params{
		LookaheadSeconds: 1,
		RingSamples:      DefaultRingSamples,
		ADSBRangeMeters:  DefaultADSBRangeMeters,
		Workers:          1,
	}
}

// WindowWidth returns the analysis window duration.
func (p Params) WindowWidth() time.Duration {
	return time.Duration(p.LookaheadSeconds * float64(time.Second))
}
