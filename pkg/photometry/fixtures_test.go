package photometry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"specphot/internal/models"
	"specphot/pkg/spectral"
)

// micronRange returns n evenly spaced samples from start in steps of step
func micronRange(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// testGrid builds a 0.40-0.70 micron grid at redshift z
func testGrid(t *testing.T, z float64) models.SpectralGrid {
	t.Helper()
	grid, err := spectral.BuildGrid(micronRange(0.40, 0.01, 31), z)
	require.NoError(t, err)
	return grid
}

// flatFilter has unit response over [lo, hi] Angstrom
func flatFilter(band string, lo, hi float64) models.FilterCurve {
	return models.FilterCurve{
		Band:        band,
		Wavelengths: []float64{lo, hi},
		Response:    []float64{1, 1},
	}
}

// triangleFilter peaks at the centre of [lo, hi]
func triangleFilter(band string, lo, hi float64) models.FilterCurve {
	return models.FilterCurve{
		Band:        band,
		Wavelengths: []float64{lo, (lo + hi) / 2, hi},
		Response:    []float64{0, 0.8, 0},
	}
}

func zeroExtinction() models.ExtinctionCurve {
	return models.ExtinctionCurve{
		Wavelengths:  []float64{1000, 20000},
		Coefficients: []float64{0, 0},
	}
}

// sloped extinction: 0.5 mag/airmass at 3000 falling to 0.05 at 9000
func slopedExtinction() models.ExtinctionCurve {
	return models.ExtinctionCurve{
		Wavelengths:  []float64{3000, 6000, 9000},
		Coefficients: []float64{0.5, 0.15, 0.05},
	}
}

// flatCube fills every pixel and wavelength with value
func flatCube(rows, cols, waves int, value float64) *models.Datacube {
	c := models.NewDatacube(rows, cols, waves)
	for i := range c.Data {
		c.Data[i] = value
	}
	return c
}
