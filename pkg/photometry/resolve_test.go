package photometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specphot/internal/models"
	perrors "specphot/pkg/errors"
	"specphot/pkg/interpolation"
)

func TestResolveFilterIsAlignedAndBandLimited(t *testing.T) {
	grid := testGrid(t, 0)
	filter := triangleFilter("g", 4500, 5500)

	for _, airmass := range []float64{0, 1.0, ReferenceAirmass, 2.3} {
		response, err := ResolveFilter(filter, grid, slopedExtinction(), airmass)
		require.NoError(t, err)
		require.Len(t, response, grid.Len())

		for i, wl := range grid.Wavelengths {
			if wl < 4500 || wl > 5500 {
				assert.Zero(t, response[i], "airmass %g: response at %g A must be zero", airmass, wl)
			}
			assert.GreaterOrEqual(t, response[i], 0.0)
		}
	}
}

func TestResolveFilterReferenceAirmassIsIdentity(t *testing.T) {
	grid := testGrid(t, 0.1)
	filter := triangleFilter("r", 5000, 7000)

	raw, err := interpolation.Resample(filter.Wavelengths, filter.Response, grid.Wavelengths, interpolation.ZeroFill)
	require.NoError(t, err)

	response, err := ResolveFilter(filter, grid, slopedExtinction(), ReferenceAirmass)
	require.NoError(t, err)
	assert.Equal(t, raw, response)
}

func TestResolveFilterRemovesReferenceAttenuation(t *testing.T) {
	grid := testGrid(t, 0)
	filter := flatFilter("g", 3000, 9000)
	ext := slopedExtinction()

	kk, err := ResampleExtinction(ext, grid)
	require.NoError(t, err)

	response, err := ResolveFilter(filter, grid, ext, 0)
	require.NoError(t, err)
	for i := range response {
		want := math.Pow(10, 0.4*ReferenceAirmass*kk[i])
		assert.InDelta(t, want, response[i], 1e-12)
		assert.Greater(t, response[i], 1.0)
	}
}

func TestResampleExtinctionBoundaryPolicy(t *testing.T) {
	grid := testGrid(t, 0) // 4000 .. 7000 A
	ext := slopedExtinction()
	ext.Wavelengths = []float64{5000, 5500, 6000}
	ext.Coefficients = []float64{0.2, 0.35, 0.1}

	kk, err := ResampleExtinction(ext, grid)
	require.NoError(t, err)

	for i, wl := range grid.Wavelengths {
		switch {
		case wl < 5000:
			assert.Equal(t, 0.35, kk[i], "below the table the maximum coefficient applies")
		case wl > 6000:
			assert.Zero(t, kk[i], "above the table extinction vanishes")
		}
	}
}

func TestResampleExtinctionRejectsNonFiniteCoefficients(t *testing.T) {
	grid := testGrid(t, 0)
	for _, bad := range []float64{math.NaN(), math.Inf(1)} {
		ext := models.ExtinctionCurve{
			Wavelengths:  []float64{3000, 5500, 9000},
			Coefficients: []float64{0.5, bad, 0.05},
		}
		_, err := ResampleExtinction(ext, grid)
		assert.ErrorIs(t, err, perrors.ErrConfiguration, "coefficient %g", bad)

		_, err = ResolveFilter(flatFilter("g", 4000, 7000), grid, ext, 0)
		assert.ErrorIs(t, err, perrors.ErrConfiguration, "coefficient %g", bad)
	}
}

func TestResolveFilterErrors(t *testing.T) {
	grid := testGrid(t, 0)

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "short filter",
			run: func() error {
				f := flatFilter("g", 4000, 5000)
				f.Wavelengths, f.Response = f.Wavelengths[:1], f.Response[:1]
				_, err := ResolveFilter(f, grid, zeroExtinction(), 0)
				return err
			},
		},
		{
			name: "unsorted filter",
			run: func() error {
				f := flatFilter("g", 5000, 4000)
				_, err := ResolveFilter(f, grid, zeroExtinction(), 0)
				return err
			},
		},
		{
			name: "negative response",
			run: func() error {
				f := flatFilter("g", 4000, 5000)
				f.Response[0] = -0.1
				_, err := ResolveFilter(f, grid, zeroExtinction(), 0)
				return err
			},
		},
		{
			name: "negative airmass",
			run: func() error {
				_, err := ResolveFilter(flatFilter("g", 4000, 5000), grid, zeroExtinction(), -1)
				return err
			},
		},
		{
			name: "short extinction",
			run: func() error {
				ext := zeroExtinction()
				ext.Wavelengths, ext.Coefficients = ext.Wavelengths[:1], ext.Coefficients[:1]
				_, err := ResolveFilter(flatFilter("g", 4000, 5000), grid, ext, 0)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, perrors.ErrConfiguration)
		})
	}
}
