package ssd

import (
	"math"
	"testing"
)

func TestVelocityRing(t *testing.T) {
	t.Run("Annulus has outer and inner contour", func(t *testing.T) {
		ring := VelocityRing(4, 30, 180)
		if len(ring) != 2 {
			t.Fatalf("Expected 2 contours, got %d", len(ring))
		}
		if len(ring[0]) != 180 || len(ring[1]) != 180 {
			t.Errorf("Expected 180 vertices per contour, got %d and %d", len(ring[0]), len(ring[1]))
		}
	})

	t.Run("Zero vmin gives a plain disk", func(t *testing.T) {
		ring := VelocityRing(0, 30, 180)
		if len(ring) != 1 {
			t.Fatalf("Expected 1 contour for vmin=0, got %d", len(ring))
		}
	})

	t.Run("Outer is clockwise and inner counter-clockwise", func(t *testing.T) {
		ring := VelocityRing(4, 30, 180)
		if a := ring[0].signedArea(); a >= 0 {
			t.Errorf("Expected clockwise (negative) outer contour, got signed area %.3f", a)
		}
		if a := ring[1].signedArea(); a <= 0 {
			t.Errorf("Expected counter-clockwise (positive) inner contour, got signed area %.3f", a)
		}
	})

	t.Run("Vertices sit on the circles", func(t *testing.T) {
		ring := VelocityRing(4, 30, 180)
		for _, p := range ring[0] {
			if r := math.Hypot(p.X, p.Y); math.Abs(r-30) > 1e-9 {
				t.Fatalf("Outer vertex at radius %.9f, expected 30", r)
			}
		}
		for _, p := range ring[1] {
			if r := math.Hypot(p.X, p.Y); math.Abs(r-4) > 1e-9 {
				t.Fatalf("Inner vertex at radius %.9f, expected 4", r)
			}
		}
	})

	t.Run("Sample floor", func(t *testing.T) {
		ring := VelocityRing(0, 10, 1)
		if len(ring[0]) < 3 {
			t.Errorf("Expected at least 3 vertices, got %d", len(ring[0]))
		}
	})

	t.Run("Shoelace area approaches the analytic annulus area", func(t *testing.T) {
		ring := VelocityRing(4, 30, 180)
		got := math.Abs(ring[0].signedArea()) - math.Abs(ring[1].signedArea())
		want := AnnulusArea(4, 30)

		// An inscribed 180-gon undershoots the circle by ~0.02%.
		if relErr := math.Abs(got-want) / want; relErr > 1e-3 {
			t.Errorf("Sampled area %.4f vs analytic %.4f (rel err %.2e)", got, want, relErr)
		}
		if got >= want {
			t.Errorf("Inscribed polygon area %.6f should be below analytic %.6f", got, want)
		}
	})
}

func TestAnnulusArea(t *testing.T) {
	tests := []struct {
		name       string
		vmin, vmax float64
		want       float64
	}{
		{"Disk", 0, 10, 100 * math.Pi},
		{"Annulus", 4, 30, (900 - 16) * math.Pi},
		{"Degenerate", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnnulusArea(tt.vmin, tt.vmax); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %.6f, got %.6f", tt.want, got)
			}
		})
	}
}
