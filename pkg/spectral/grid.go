// Package spectral builds the observed-frame wavelength grid shared by all
// bands of a run.
package spectral

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"specphot/internal/models"
	perrors "specphot/pkg/errors"
)

// MicronToAngstrom converts the wavelength table unit to the grid unit.
const MicronToAngstrom = 1e4

// BuildGrid converts rest-frame wavelength samples in microns to an
// observed-frame grid in Angstrom, stretching every sample by (1+z), and
// derives the bin width as the median of consecutive differences.
//
// The grid is built once per run and shared read-only by every band.
//
// Parameters:
//   - microns: wavelength samples, one per datacube slice, strictly increasing
//   - redshift: target redshift, z >= 0
//
// Returns:
//   - the spectral grid, or a configuration error if fewer than two samples
//     are given, the samples are not strictly increasing, or z is invalid
func BuildGrid(microns []float64, redshift float64) (models.SpectralGrid, error) {
	if math.IsNaN(redshift) || math.IsInf(redshift, 0) || redshift < 0 {
		return models.SpectralGrid{}, perrors.Configurationf("spectral grid", "redshift must be a finite value >= 0, got %g", redshift)
	}
	if len(microns) < 2 {
		return models.SpectralGrid{}, perrors.Configurationf("spectral grid", "wavelength table has %d samples, need at least 2", len(microns))
	}
	if floats.HasNaN(microns) {
		return models.SpectralGrid{}, perrors.Configurationf("spectral grid", "wavelength table contains NaN")
	}

	stretch := 1 + redshift
	wl := make([]float64, len(microns))
	for i, m := range microns {
		wl[i] = m * MicronToAngstrom * stretch
	}

	diffs := make([]float64, len(wl)-1)
	floats.SubTo(diffs, wl[1:], wl[:len(wl)-1])
	for i, d := range diffs {
		if d <= 0 {
			return models.SpectralGrid{}, perrors.Configurationf("spectral grid",
				"wavelength table not strictly increasing at sample %d (%g after %g micron)", i+1, microns[i+1], microns[i])
		}
	}

	return models.SpectralGrid{
		Wavelengths: wl,
		BinWidth:    median(diffs),
		Redshift:    redshift,
	}, nil
}

// median calculates the median value of a slice of float64 values
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
