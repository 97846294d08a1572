package ssd

import (
	"math"
	"testing"
)

func TestRegionArea(t *testing.T) {
	unitSquare := Contour{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	clockwiseSquare := Contour{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	tests := []struct {
		name   string
		region Region
		want   float64
	}{
		{"Empty region", Region{}, 0},
		{"Unit square CCW", Region{unitSquare}, 1},
		{"Unit square CW still positive", Region{clockwiseSquare}, 1},
		{"Two contours sum", Region{unitSquare, clockwiseSquare}, 2},
		{"Degenerate two-vertex contour", Region{{{0, 0}, {1, 1}}}, 0},
		{"Right triangle", Region{{{0, 0}, {4, 0}, {0, 3}}}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Area(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected area %.6f, got %.6f", tt.want, got)
			}
		})
	}
}

func TestRegionEmpty(t *testing.T) {
	if !(Region{}).Empty() {
		t.Error("Expected zero-contour region to be empty")
	}
	if (Region{{{0, 0}, {1, 0}, {0, 1}}}).Empty() {
		t.Error("Expected one-contour region to be non-empty")
	}
}

func TestContourValid(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
		want    bool
	}{
		{"Triangle", Contour{{0, 0}, {1, 0}, {0, 1}}, true},
		{"Two vertices", Contour{{0, 0}, {1, 0}}, false},
		{"NaN vertex", Contour{{0, 0}, {math.NaN(), 0}, {0, 1}}, false},
		{"Infinite vertex", Contour{{0, 0}, {1, 0}, {0, math.Inf(1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.contour.valid(); got != tt.want {
				t.Errorf("Expected valid=%v, got %v", tt.want, got)
			}
		})
	}
}
