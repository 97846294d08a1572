// Package performance maps flight status to the velocity and separation
// envelope used by the conflict engine. The fallback table mirrors the BADA
// surface-movement defaults: speeds in knots, separations in meters.
package performance

import "strings"

// FeetToMeters converts feet to meters.
const FeetToMeters = 0.3048

// Envelope is one aircraft's performance constraints for a window.
type Envelope struct {
	// Vmin is the minimum speed in knots (inner radius of the reachable
	// velocity ring)
	Vmin float64

	// Vmax is the maximum speed in knots (outer radius)
	Vmax float64

	// Separation is the required horizontal separation in meters
	Separation float64
}

// Fallback envelopes by flight phase.
var (
	pushbackEnvelope = Envelope{Vmin: 0, Vmax: 4, Separation: 175 * FeetToMeters}
	taxiEnvelope     = Envelope{Vmin: 0, Vmax: 30, Separation: 200 * FeetToMeters}
	airborneEnvelope = Envelope{Vmin: 0, Vmax: 200, Separation: 2640 * FeetToMeters}
)

// Lookup returns the envelope for a status string. Matching follows the
// surface-status vocabularies seen in TDDS and NATS feeds: gate/pushback
// phases get the tightest envelope, taxi/departing the intermediate one, and
// everything else is treated as takeoff or landing. A missing status is
// assumed to be pushback.
func Lookup(status string) Envelope {
	s := strings.ToUpper(status)
	switch {
	case s == "" || s == "ONSURFACE" || strings.Contains(s, "GATE") || strings.Contains(s, "PUSHBACK"):
		return pushbackEnvelope
	case s == "ONRAMP" || strings.Contains(s, "TAXI") || strings.Contains(s, "DEPARTING"):
		return taxiEnvelope
	default:
		return airborneEnvelope
	}
}

// LookupAll maps a slice of statuses through Lookup.
func LookupAll(statuses []string) []Envelope {
	envs := make([]Envelope, len(statuses))
	for i, s := range statuses {
		envs[i] = Lookup(s)
	}
	return envs
}
