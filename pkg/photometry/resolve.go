package photometry

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"specphot/internal/models"
	perrors "specphot/pkg/errors"
	"specphot/pkg/interpolation"
)

// ResolveFilter resamples a raw filter curve onto the spectral grid and
// applies the atmospheric extinction correction for the requested airmass:
//
//	R(λ) *= 10^(0.4 * (ReferenceAirmass - airmass) * k(λ))
//
// The filter is zero outside its tabulated range. The extinction law is
// extended with its largest coefficient below its range and with zero above
// it. At airmass 0 the correction removes the reference attenuation baked
// into the raw curve; at ReferenceAirmass it is exactly 1.
func ResolveFilter(curve models.FilterCurve, grid models.SpectralGrid, ext models.ExtinctionCurve, airmass float64) ([]float64, error) {
	if math.IsNaN(airmass) || math.IsInf(airmass, 0) || airmass < 0 {
		return nil, perrors.Configurationf("resolve filter", "airmass must be a finite value >= 0, got %g", airmass)
	}
	if len(curve.Wavelengths) < 2 {
		return nil, perrors.Configurationf("resolve filter", "filter curve for band %q has %d points, need at least 2", curve.Band, len(curve.Wavelengths))
	}
	for i, r := range curve.Response {
		if math.IsNaN(r) || r < 0 {
			return nil, perrors.Configurationf("resolve filter", "filter curve for band %q has invalid response %g at row %d", curve.Band, r, i)
		}
	}

	response, err := interpolation.Resample(curve.Wavelengths, curve.Response, grid.Wavelengths, interpolation.ZeroFill)
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "resample filter", err)
	}

	kk, err := ResampleExtinction(ext, grid)
	if err != nil {
		return nil, err
	}

	dAirmass := ReferenceAirmass - airmass
	for i := range response {
		response[i] *= math.Pow(10, 0.4*(dAirmass*kk[i]))
	}
	return response, nil
}

// ResampleExtinction resamples the extinction law onto the grid, filling
// with the maximum tabulated coefficient below the table and zero above.
// Every tabulated coefficient must be finite.
func ResampleExtinction(ext models.ExtinctionCurve, grid models.SpectralGrid) ([]float64, error) {
	if len(ext.Wavelengths) < 2 {
		return nil, perrors.Configurationf("resample extinction", "extinction table has %d points, need at least 2", len(ext.Wavelengths))
	}
	for i, k := range ext.Coefficients {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return nil, perrors.Configurationf("resample extinction", "extinction table has non-finite coefficient %g at row %d", k, i+1)
		}
	}
	if len(ext.Coefficients) != len(ext.Wavelengths) {
		return nil, perrors.Configurationf("resample extinction", "extinction table has %d wavelengths but %d coefficients", len(ext.Wavelengths), len(ext.Coefficients))
	}

	left := floats.Max(ext.Coefficients)
	kk, err := interpolation.Resample(ext.Wavelengths, ext.Coefficients, grid.Wavelengths, interpolation.Boundary{Left: left, Right: 0})
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "resample extinction", err)
	}
	return kk, nil
}
