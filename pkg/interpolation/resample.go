// Package interpolation resamples tabulated curves onto a target grid.
package interpolation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Boundary selects the values used for target samples outside the
// tabulated domain.
type Boundary struct {
	// Left is used where x < xp[0]
	Left float64
	// Right is used where x > xp[len(xp)-1]
	Right float64
}

// ZeroFill is the boundary policy for band-limited curves such as filter
// throughputs: no signal outside the tabulated range.
var ZeroFill = Boundary{}

// Resample linearly interpolates the curve (xp, fp) at every x. Samples
// inside [xp[0], xp[n-1]] are interpolated; samples outside take the
// boundary fill values. xp must be strictly increasing and hold at least
// two points. x may be in any order.
//
// Parameters:
//   - xp, fp: the tabulated curve
//   - x: the target sample positions
//   - b: fill values for the left and right of the tabulated domain
//
// Returns:
//   - a slice aligned 1:1 with x
func Resample(xp, fp, x []float64, b Boundary) ([]float64, error) {
	if err := checkCurve(xp, fp); err != nil {
		return nil, err
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xp, fp); err != nil {
		return nil, fmt.Errorf("fit curve: %w", err)
	}

	lo, hi := xp[0], xp[len(xp)-1]
	out := make([]float64, len(x))
	for i, v := range x {
		switch {
		case v < lo:
			out[i] = b.Left
		case v > hi:
			out[i] = b.Right
		default:
			out[i] = pl.Predict(v)
		}
	}
	return out, nil
}

// checkCurve validates a tabulated curve before fitting, since the gonum
// fitter panics on short or unsorted input.
func checkCurve(xp, fp []float64) error {
	if len(xp) != len(fp) {
		return fmt.Errorf("curve has %d abscissae but %d values", len(xp), len(fp))
	}
	if len(xp) < 2 {
		return fmt.Errorf("curve has %d points, need at least 2", len(xp))
	}
	for i := range xp {
		if math.IsNaN(xp[i]) || math.IsInf(xp[i], 0) {
			return fmt.Errorf("curve abscissa %d is not finite", i)
		}
		if i > 0 && xp[i] <= xp[i-1] {
			return fmt.Errorf("curve abscissae not strictly increasing at index %d (%g <= %g)", i, xp[i], xp[i-1])
		}
	}
	return nil
}
