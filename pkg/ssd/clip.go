package ssd

import (
	"fmt"

	polyclip "github.com/ctessum/polyclip-go"
)

// ClipEngine performs polygon boolean operations on regions. The engine is an
// injected capability so the conflict geometry does not depend on any one
// clipping library's quirks; any implementation that handles multi-contour
// subjects (a ring with a hole) and returns multi-contour results conforms.
//
// Implementations reject malformed paths by returning an error rather than
// producing undefined geometry; the caller drops the offending contribution.
type ClipEngine interface {
	// Union returns a ∪ b.
	Union(a, b Region) (Region, error)

	// Intersect returns subject ∩ clip.
	Intersect(subject, clip Region) (Region, error)

	// Difference returns subject − clip.
	Difference(subject, clip Region) (Region, error)
}

// NewClipEngine returns the default ClipEngine, backed by the Martinez–Rueda
// implementation in polyclip-go. It operates on float64 coordinates directly;
// there is no fixed-point scaling in either direction, so areas computed from
// its output are at true magnitude.
func NewClipEngine() ClipEngine {
	return polyclipEngine{}
}

type polyclipEngine struct{}

func (polyclipEngine) Union(a, b Region) (Region, error) {
	return construct(polyclip.UNION, a, b)
}

func (polyclipEngine) Intersect(subject, clip Region) (Region, error) {
	return construct(polyclip.INTERSECTION, subject, clip)
}

func (polyclipEngine) Difference(subject, clip Region) (Region, error) {
	return construct(polyclip.DIFFERENCE, subject, clip)
}

// construct runs one boolean operation, validating inputs first and
// converting any library panic into an error so a single malformed path
// cannot abort a whole window's computation.
func construct(op polyclip.Op, a, b Region) (result Region, err error) {
	pa, err := toPolyclip(a)
	if err != nil {
		return nil, err
	}
	pb, err := toPolyclip(b)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("clip operation failed: %v", r)
		}
	}()

	return fromPolyclip(pa.Construct(op, pb)), nil
}

func toPolyclip(r Region) (polyclip.Polygon, error) {
	poly := make(polyclip.Polygon, 0, len(r))
	for _, c := range r {
		if !c.valid() {
			return nil, fmt.Errorf("malformed contour: %d vertices", len(c))
		}
		pc := make(polyclip.Contour, len(c))
		for i, p := range c {
			pc[i] = polyclip.Point{X: p.X, Y: p.Y}
		}
		poly = append(poly, pc)
	}
	return poly, nil
}

// fromPolyclip normalizes the library result back to a Region. A nil or
// zero-contour result becomes the canonical empty region.
func fromPolyclip(poly polyclip.Polygon) Region {
	if len(poly) == 0 {
		return Region{}
	}
	r := make(Region, 0, len(poly))
	for _, pc := range poly {
		c := make(Contour, len(pc))
		for i, p := range pc {
			c[i] = Point{X: p.X, Y: p.Y}
		}
		r = append(r, c)
	}
	return r
}
