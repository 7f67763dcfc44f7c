package photometry

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"specphot/internal/models"
	perrors "specphot/pkg/errors"
)

// PivotWavelength2 returns the squared pivot wavelength of a resolved
// response in Angstrom^2:
//
//	λp² = Σ(R·λ·Δλ) / Σ(R·Δλ/λ)
//
// A response that is zero across the whole grid, or sums that are not
// positive and finite, are reported as a numeric degeneracy.
func PivotWavelength2(response []float64, grid models.SpectralGrid) (float64, error) {
	if err := checkAligned(response, grid); err != nil {
		return 0, err
	}

	dwl := grid.BinWidth
	var num, den float64
	for i, r := range response {
		wl := grid.Wavelengths[i]
		num += r * wl * dwl
		den += r * dwl / wl
	}
	if !(num > 0) || !(den > 0) {
		return 0, perrors.NumericDegeneracyf("pivot wavelength", "filter response integrates to %g over the spectral grid", den)
	}
	pivot2 := num / den
	if math.IsInf(pivot2, 0) || math.IsNaN(pivot2) {
		return 0, perrors.NumericDegeneracyf("pivot wavelength", "pivot wavelength is not finite (%g / %g)", num, den)
	}
	return pivot2, nil
}

// IntegrateFlux collapses the wavelength axis of the cube into the
// filter-weighted mean photon-rate density per spatial pixel:
//
//	F = Σ(λ·R·I·Δλ) / Σ(λ·R·Δλ)
//
// The result is row-major with cube.Rows x cube.Cols entries, in the
// cube's intensity units.
func IntegrateFlux(cube *models.Datacube, response []float64, grid models.SpectralGrid) ([]float64, error) {
	if err := checkAligned(response, grid); err != nil {
		return nil, err
	}
	if cube.Waves != grid.Len() {
		return nil, perrors.Configurationf("integrate flux", "datacube has %d wavelength slices but the grid has %d samples", cube.Waves, grid.Len())
	}

	weights := make([]float64, len(response))
	for i, r := range response {
		weights[i] = grid.Wavelengths[i] * r * grid.BinWidth
	}
	den := floats.Sum(weights)
	if !(den > 0) || math.IsInf(den, 0) {
		return nil, perrors.NumericDegeneracyf("integrate flux", "filter response integrates to %g over the spectral grid", den)
	}

	flux := make([]float64, cube.Pixels())
	for w, weight := range weights {
		// out-of-band slices contribute nothing
		if weight == 0 {
			continue
		}
		floats.AddScaled(flux, weight, cube.Plane(w))
	}
	for i := range flux {
		flux[i] /= den
	}
	return flux, nil
}

func checkAligned(response []float64, grid models.SpectralGrid) error {
	if len(response) != grid.Len() {
		return perrors.Configurationf("align response", "response has %d samples but the grid has %d", len(response), grid.Len())
	}
	if grid.BinWidth <= 0 {
		return perrors.Configurationf("align response", "grid bin width must be positive, got %g", grid.BinWidth)
	}
	return nil
}
