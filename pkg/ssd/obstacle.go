package ssd

import (
	"math"

	"github.com/unklstewy/groundscope/pkg/geometry"
)

// Velocity is an aircraft ground-velocity vector in knots (east, north
// components).
type Velocity struct {
	X float64
	Y float64
}

// VelocityFromTrack converts a true airspeed (knots) and heading (degrees,
// 0 at north, clockwise) into east/north velocity components.
func VelocityFromTrack(tas, headingDeg float64) Velocity {
	rad := headingDeg * geometry.DegreesToRadians
	return Velocity{
		X: math.Sin(rad) * tas,
		Y: math.Cos(rad) * tas,
	}
}

// MaxAlpha caps the velocity-obstacle half-angle just under π/2 so the wedge
// stays constructible (non-degenerate, non-reflex) as the pair distance
// approaches the separation floor.
const MaxAlpha = 0.4999 * math.Pi

// VelocityObstacle builds the triangular VO wedge for one subject aircraft
// against one neighbor: the set of subject velocities that lead to a future
// loss of separation, anchored at the neighbor's current ground velocity.
//
// pair is the canonical (lower index → higher index) geometry for the two
// aircraft. mirrored must be true when the neighbor's canonical index
// precedes the subject's; only the canonical direction is ever computed, and
// the reverse VO is its point mirror through the wedge apex. Getting this
// flag wrong flips the wedge into the opposite half-plane, so it is carried
// explicitly rather than re-derived from raw geometry.
//
// The wedge legs extend 2·vmax from the apex, enough to span any reachable
// velocity ring of radius vmax.
func VelocityObstacle(pair geometry.Pair, mirrored bool, separation, vmax float64, neighbor Velocity) Contour {
	alpha := math.Asin(math.Min(separation/pair.Distance, 1))
	if alpha > MaxAlpha {
		alpha = MaxAlpha
	}

	sinq := math.Sin(pair.Bearing)
	cosq := math.Cos(pair.Bearing)
	tana := math.Tan(alpha)

	// Wedge leg endpoints relative to the apex, canonical direction.
	x1 := (sinq + cosq*tana) * 2 * vmax
	y1 := (cosq - sinq*tana) * 2 * vmax
	x2 := (sinq - cosq*tana) * 2 * vmax
	y2 := (cosq + sinq*tana) * 2 * vmax

	fix := 1.0
	if mirrored {
		fix = -1.0
	}

	return Contour{
		{X: neighbor.X, Y: neighbor.Y},
		{X: x1*fix + neighbor.X, Y: y1*fix + neighbor.Y},
		{X: x2*fix + neighbor.X, Y: y2*fix + neighbor.Y},
	}
}
