// Package photometry synthesises broadband surface-brightness images from a
// spectral datacube.
//
// A band is processed in four steps that only ever feed forward:
//
//  1. ResolveFilter resamples the raw filter curve onto the spectral grid and
//     applies the extinction correction for the requested airmass.
//  2. PivotWavelength2 derives the photon-weighted pivot wavelength of the
//     resolved response.
//  3. IntegrateFlux collapses the cube's wavelength axis against the response.
//  4. SurfaceBrightness converts the flux map to AB mag/arcsec2, including
//     the (1+z)^-5 dimming, and ProcessBand stamps the provenance header.
//
// Bands share only the read-only grid and cube, so callers may process them
// concurrently.
package photometry

import (
	"math"

	"specphot/internal/models"
	perrors "specphot/pkg/errors"
)

// BandProduct is the outcome of processing one band
type BandProduct struct {
	Image *models.SurfaceBrightnessImage

	// Response is the resolved filter response aligned with the grid
	Response []float64

	// Pivot2 is the unrounded squared pivot wavelength in Angstrom^2
	Pivot2 float64

	// Undefined counts pixels that carry the undefined-magnitude marker
	Undefined int
}

// ProcessBand runs the full synthesis for one band. There is no separate
// redshift argument: the dimming correction and the REDSHIFT card use
// grid.Redshift, so the grid must be built at the source redshift with
// spectral.BuildGrid. Errors carry the band identifier.
func ProcessBand(band Band, grid models.SpectralGrid, cube *models.Datacube, filter models.FilterCurve, ext models.ExtinctionCurve, airmass float64) (*BandProduct, error) {
	if !band.IsValid() {
		return nil, perrors.WithBand(perrors.Configurationf("process band", "unknown band %q", band), string(band))
	}
	if cube == nil {
		return nil, perrors.WithBand(perrors.Configurationf("process band", "no datacube"), string(band))
	}

	response, err := ResolveFilter(filter, grid, ext, airmass)
	if err != nil {
		return nil, perrors.WithBand(err, string(band))
	}

	pivot2, err := PivotWavelength2(response, grid)
	if err != nil {
		return nil, perrors.WithBand(err, string(band))
	}

	flux, err := IntegrateFlux(cube, response, grid)
	if err != nil {
		return nil, perrors.WithBand(err, string(band))
	}

	sb := SurfaceBrightness(flux, pivot2, grid.Redshift)
	undefined := 0
	for _, m := range sb {
		if IsUndefined(m) {
			undefined++
		}
	}

	pivot := RoundPivot(pivot2)
	img := &models.SurfaceBrightnessImage{
		Band:            string(band),
		Data:            sb,
		Rows:            cube.Rows,
		Cols:            cube.Cols,
		PivotWavelength: pivot,
		Redshift:        grid.Redshift,
		Airmass:         airmass,
		Unit:            SurfaceBrightnessUnit,
		Header:          StampHeader(cube.Header, band, pivot, grid.Redshift, airmass),
	}

	return &BandProduct{
		Image:     img,
		Response:  response,
		Pivot2:    pivot2,
		Undefined: undefined,
	}, nil
}

// RoundPivot returns sqrt(pivot2) rounded to one decimal
func RoundPivot(pivot2 float64) float64 {
	return math.Round(math.Sqrt(pivot2)*10) / 10
}

// StampHeader derives the output header from the cube header: the spectral
// axis is dropped and the unit, band, pivot wavelength, redshift and
// airmass are recorded. The cube header is not modified.
func StampHeader(cubeHeader models.Header, band Band, pivot, redshift, airmass float64) models.Header {
	h := cubeHeader.Clone().Remove("NAXIS3")
	h = h.Set("BUNIT", SurfaceBrightnessUnit, "Surface brightness")
	h = h.Set("FILTER", string(band), "Transmission band")
	h = h.Set("WLEFF", pivot, "Effective WL of response [Angstrom]")
	h = h.Set("REDSHIFT", redshift, "Redshift")
	h = h.Set("AIRMASS", airmass, "Airmass of extinction correction")
	return h
}
