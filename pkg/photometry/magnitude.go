package photometry

import "math"

// UndefinedMagnitude marks pixels without positive flux. It is NaN, the
// FITS blank value for floating-point images; test with IsUndefined.
var UndefinedMagnitude = math.NaN()

// IsUndefined reports whether m is the undefined-magnitude marker
func IsUndefined(m float64) bool {
	return math.IsNaN(m)
}

// Magnitude converts a flux relative to the AB zero point to a magnitude.
// Non-positive and non-finite fluxes yield UndefinedMagnitude.
func Magnitude(relative float64) float64 {
	if !(relative > 0) || math.IsInf(relative, 1) {
		return UndefinedMagnitude
	}
	return -2.5 * math.Log10(relative)
}

// FluxScale is the factor taking a filter-averaged intensity in
// W/m2/micron/arcsec2 to maggies/arcsec2 for a band with squared pivot
// wavelength pivot2 (Angstrom^2) at the given redshift:
// Jy*Hz/Angstrom, times λp²/c to Jy, over the AB zero point, times the
// (1+z)^-5 surface-brightness dimming.
func FluxScale(pivot2, redshift float64) float64 {
	return IntensityToJyHz * pivot2 / SpeedOfLightAngstrom / ABZeroPoint * math.Pow(1+redshift, -5)
}

// SurfaceBrightness converts a flux map to AB mag/arcsec2. The output has
// the same length and order as flux.
func SurfaceBrightness(flux []float64, pivot2, redshift float64) []float64 {
	scale := FluxScale(pivot2, redshift)
	out := make([]float64, len(flux))
	for i, f := range flux {
		out[i] = Magnitude(f * scale)
	}
	return out
}
