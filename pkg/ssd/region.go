// Package ssd implements the state-space-display conflict geometry for
// surface movement: velocity obstacles, reachable-velocity rings, polygon
// clipping into forbidden/allowed velocity regions, and the resulting Free
// Path Fraction (FPF) metric per aircraft per time window.
package ssd

import "math"

// Point is a coordinate in 2-D velocity space (knots east, knots north).
type Point struct {
	X float64
	Y float64
}

// Contour is a closed polygon boundary. The closing edge from the last vertex
// back to the first is implicit.
type Contour []Point

// Region is a polygon with zero or more contours. Zero contours means the
// empty region; one contour is a simple polygon; an annulus carries its outer
// and inner boundary as two contours. The shape is always a list of contours,
// never a value whose structure depends on content.
type Region []Contour

// Empty reports whether the region has no contours.
func (r Region) Empty() bool {
	return len(r) == 0
}

// Area returns the non-negative total area of the region: the absolute
// shoelace area of each contour, summed. An empty region has area 0.
func (r Region) Area() float64 {
	var total float64
	for _, c := range r {
		total += math.Abs(c.signedArea())
	}
	return total
}

// signedArea computes the shoelace area of a single contour. Positive for
// counter-clockwise winding, negative for clockwise.
func (c Contour) signedArea() float64 {
	if len(c) < 3 {
		return 0
	}
	var sum float64
	for i := range c {
		j := (i + 1) % len(c)
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return sum / 2
}

// valid reports whether the contour is a constructible clip path: at least
// three vertices, all coordinates finite.
func (c Contour) valid() bool {
	if len(c) < 3 {
		return false
	}
	for _, p := range c {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) ||
			math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
