package ssd

import "math"

// VelocityRing builds an aircraft's reachable-velocity annulus: every
// velocity the aircraft can fly, bounded by vmin and vmax and independent of
// heading. The outer circle at vmax is wound clockwise and the inner circle
// at vmin counter-clockwise, giving the hole-in-a-disk topology the clip
// engine expects.
//
// Both circles are sampled at the same fixed angular resolution; 180 samples
// (2° steps) trades boundary fidelity against clipping cost. When vmin is
// zero the inner boundary degenerates to a point and is omitted, leaving a
// plain disk.
func VelocityRing(vmin, vmax float64, samples int) Region {
	if samples < 3 {
		samples = 3
	}

	// Unit circle, counter-clockwise starting at north. sin/cos order puts
	// X east and Y north, matching the velocity frame.
	unit := make([]Point, samples)
	for k := 0; k < samples; k++ {
		theta := 2 * math.Pi * float64(k) / float64(samples)
		unit[k] = Point{X: math.Sin(theta), Y: math.Cos(theta)}
	}

	outer := make(Contour, samples)
	for k := 0; k < samples; k++ {
		// Reversed order: clockwise outer boundary.
		p := unit[samples-1-k]
		outer[k] = Point{X: p.X * vmax, Y: p.Y * vmax}
	}

	if vmin <= 0 {
		return Region{outer}
	}

	inner := make(Contour, samples)
	for k := 0; k < samples; k++ {
		inner[k] = Point{X: unit[k].X * vmin, Y: unit[k].Y * vmin}
	}

	return Region{outer, inner}
}

// AnnulusArea returns the analytic area π(vmax²−vmin²) of the reachable
// velocity annulus. Used for the degenerate branches where no clip operation
// runs; the sampled ring's shoelace area converges to this as the sample
// count grows.
func AnnulusArea(vmin, vmax float64) float64 {
	return math.Pi * (vmax*vmax - vmin*vmin)
}
