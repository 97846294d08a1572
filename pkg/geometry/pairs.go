package geometry

import "math"

// Pair holds the bearing and distance between two aircraft, computed once for
// the canonical direction (lower index → higher index).
type Pair struct {
	// Bearing from the lower-index aircraft to the higher-index one,
	// in radians, 0 at north, clockwise, in [0, 2π)
	Bearing float64

	// Distance in meters, floor-clamped (see Compute)
	Distance float64
}

// pairKey identifies an unordered aircraft pair by canonical (low, high)
// index order.
type pairKey struct {
	low, high int
}

// PairMatrix stores the geometry for every unordered pair of aircraft in one
// window. Geometry is computed once per pair; the reverse direction is served
// from the same entry with a mirrored flag, so callers never recompute raw
// deltas for the opposite ordering.
type PairMatrix struct {
	n     int
	pairs map[pairKey]Pair
}

// CoLocatedIncrement is added to the separation floor when two aircraft
// report the exact same position, so the arcsin in the velocity-obstacle
// construction stays defined.
const CoLocatedIncrement = 1.0

// Compute builds the pair matrix for one window of aircraft positions.
//
// Distances below the horizontal separation floor are clamped up to it, and a
// raw distance of exactly zero (duplicate or co-located records) is clamped
// to separation+CoLocatedIncrement. positions must have at least 2 entries;
// the caller skips windows with fewer aircraft entirely.
func Compute(positions []Geographic, separation float64) *PairMatrix {
	m := &PairMatrix{
		n:     len(positions),
		pairs: make(map[pairKey]Pair, len(positions)*(len(positions)-1)/2),
	}

	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			bearing, dist := FlatEarth(positions[i], positions[j])
			if dist == 0 {
				dist = separation + CoLocatedIncrement
			} else if dist < separation {
				dist = separation
			}
			m.pairs[pairKey{i, j}] = Pair{Bearing: bearing, Distance: dist}
		}
	}

	return m
}

// Len returns the number of aircraft the matrix was built for.
func (m *PairMatrix) Len() int {
	return m.n
}

// Between returns the geometry for the ordered pair (i, j).
//
// The returned Pair is always the canonical low→high entry. mirrored is true
// when j precedes i in the canonical ordering, meaning the caller is looking
// at the pair from the far side: the true bearing from i to j is
// Pair.Bearing+π, and a velocity obstacle built from the canonical wedge must
// be point-mirrored through the origin. Distance is symmetric.
//
// ok is false when i == j or either index is out of range.
func (m *PairMatrix) Between(i, j int) (p Pair, mirrored bool, ok bool) {
	if i == j || i < 0 || j < 0 || i >= m.n || j >= m.n {
		return Pair{}, false, false
	}
	if j < i {
		p, ok = m.pairs[pairKey{j, i}], true
		return p, true, ok
	}
	p, ok = m.pairs[pairKey{i, j}]
	return p, false, ok
}

// Distance returns the clamped distance between i and j, or NaN when the pair
// does not exist.
func (m *PairMatrix) Distance(i, j int) float64 {
	p, _, ok := m.Between(i, j)
	if !ok {
		return math.NaN()
	}
	return p.Distance
}
