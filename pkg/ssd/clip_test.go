package ssd

import (
	"math"
	"testing"
)

func TestClipEngine(t *testing.T) {
	clip := NewClipEngine()

	square := func(x0, y0, size float64) Region {
		return Region{{
			{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size},
		}}
	}

	t.Run("Union of disjoint squares", func(t *testing.T) {
		got, err := clip.Union(square(0, 0, 1), square(5, 5, 1))
		if err != nil {
			t.Fatalf("Union failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("Expected 2 contours, got %d", len(got))
		}
		if a := got.Area(); math.Abs(a-2) > 1e-9 {
			t.Errorf("Expected union area 2, got %.6f", a)
		}
	})

	t.Run("Union with the empty region", func(t *testing.T) {
		got, err := clip.Union(Region{}, square(0, 0, 2))
		if err != nil {
			t.Fatalf("Union failed: %v", err)
		}
		if a := got.Area(); math.Abs(a-4) > 1e-9 {
			t.Errorf("Expected area 4, got %.6f", a)
		}
	})

	t.Run("Intersection of overlapping squares", func(t *testing.T) {
		got, err := clip.Intersect(square(0, 0, 2), square(1, 1, 2))
		if err != nil {
			t.Fatalf("Intersect failed: %v", err)
		}
		if a := got.Area(); math.Abs(a-1) > 1e-9 {
			t.Errorf("Expected intersection area 1, got %.6f", a)
		}
	})

	t.Run("Intersection of disjoint squares is empty", func(t *testing.T) {
		got, err := clip.Intersect(square(0, 0, 1), square(5, 5, 1))
		if err != nil {
			t.Fatalf("Intersect failed: %v", err)
		}
		if !got.Empty() {
			t.Errorf("Expected empty region, got %d contours", len(got))
		}
	})

	t.Run("Difference removes the overlap", func(t *testing.T) {
		got, err := clip.Difference(square(0, 0, 2), square(1, 1, 2))
		if err != nil {
			t.Fatalf("Difference failed: %v", err)
		}
		if a := got.Area(); math.Abs(a-3) > 1e-9 {
			t.Errorf("Expected difference area 3, got %.6f", a)
		}
	})

	t.Run("Annulus subject keeps its hole", func(t *testing.T) {
		ring := VelocityRing(4, 30, 180)
		got, err := clip.Intersect(ring, square(-100, -100, 200))
		if err != nil {
			t.Fatalf("Intersect failed: %v", err)
		}
		// Area sums absolute contour areas, so the hole contributes too;
		// the clipped result must match the subject under the same rule.
		want := ring.Area()
		if a := got.Area(); math.Abs(a-want)/want > 1e-9 {
			t.Errorf("Expected clipped annulus area %.6f, got %.6f", want, a)
		}
	})

	t.Run("Malformed contour is rejected", func(t *testing.T) {
		bad := Region{{{0, 0}, {math.NaN(), 1}, {1, 0}}}
		if _, err := clip.Union(Region{}, bad); err == nil {
			t.Error("Expected error for NaN vertex")
		}
		if _, err := clip.Intersect(Region{{{0, 0}, {1, 1}}}, bad); err == nil {
			t.Error("Expected error for two-vertex contour")
		}
	})
}
