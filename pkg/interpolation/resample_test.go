package interpolation

import (
	"math"
	"testing"
)

// TestResampleInterior verifies linear interpolation inside the tabulated domain
func TestResampleInterior(t *testing.T) {
	xp := []float64{1000, 2000, 3000}
	fp := []float64{0, 1, 0.5}
	x := []float64{1000, 1500, 2000, 2500, 3000}

	got, err := Resample(xp, fp, x, ZeroFill)
	if err != nil {
		t.Fatalf("Resample failed: %v", err)
	}

	want := []float64{0, 0.5, 1, 0.75, 0.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("x=%g: expected %g, got %g", x[i], want[i], got[i])
		}
	}
}

// TestResampleBoundaryFill verifies the left and right fill policy
func TestResampleBoundaryFill(t *testing.T) {
	xp := []float64{4000, 5000}
	fp := []float64{0.3, 0.1}

	tests := []struct {
		name     string
		boundary Boundary
		left     float64
		right    float64
	}{
		{"zero fill", ZeroFill, 0, 0},
		{"asymmetric fill", Boundary{Left: 0.3, Right: 0}, 0.3, 0},
		{"custom fill", Boundary{Left: -1, Right: 2}, -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(xp, fp, []float64{3999, 6000}, tt.boundary)
			if err != nil {
				t.Fatalf("Resample failed: %v", err)
			}
			if got[0] != tt.left {
				t.Errorf("left fill: expected %g, got %g", tt.left, got[0])
			}
			if got[1] != tt.right {
				t.Errorf("right fill: expected %g, got %g", tt.right, got[1])
			}
		})
	}
}

// TestResampleRejectsBadCurves checks the input validation
func TestResampleRejectsBadCurves(t *testing.T) {
	tests := []struct {
		name string
		xp   []float64
		fp   []float64
	}{
		{"single point", []float64{1}, []float64{1}},
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"decreasing", []float64{2, 1}, []float64{1, 1}},
		{"repeated abscissa", []float64{1, 1, 2}, []float64{1, 1, 1}},
		{"nan abscissa", []float64{1, math.NaN()}, []float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resample(tt.xp, tt.fp, []float64{1.5}, ZeroFill); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
