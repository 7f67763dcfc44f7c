package imageio

import (
	"os"

	"github.com/astrogo/fitsio"

	"specphot/internal/models"
	perrors "specphot/pkg/errors"
)

// ReadImage loads a surface-brightness image written by WriteImage,
// recovering the band, pivot wavelength, redshift and airmass from its
// header.
func ReadImage(path string) (*models.SurfaceBrightnessImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "open image", err)
	}
	defer f.Close()

	fits, err := fitsio.Open(f)
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "decode image "+path, err)
	}
	defer fits.Close()

	hdu, ok := fits.HDU(0).(fitsio.Image)
	if !ok {
		return nil, perrors.Configurationf("read image", "%s: primary HDU is not an image", path)
	}
	axes := hdu.Header().Axes()
	if len(axes) != 2 {
		return nil, perrors.Configurationf("read image", "%s: expected 2 axes, found %d", path, len(axes))
	}

	img := &models.SurfaceBrightnessImage{
		Rows:   axes[1],
		Cols:   axes[0],
		Header: fromFITSHeader(hdu.Header()),
	}
	img.Data, err = readPixels(hdu, axes[0]*axes[1])
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "read image pixels", err)
	}

	if c, ok := img.Header.Get("FILTER"); ok {
		img.Band, _ = c.Value.(string)
	}
	if c, ok := img.Header.Get("BUNIT"); ok {
		img.Unit, _ = c.Value.(string)
	}
	img.PivotWavelength = headerFloat(img.Header, "WLEFF")
	img.Redshift = headerFloat(img.Header, "REDSHIFT")
	img.Airmass = headerFloat(img.Header, "AIRMASS")
	return img, nil
}

func headerFloat(h models.Header, key string) float64 {
	c, ok := h.Get(key)
	if !ok {
		return 0
	}
	switch v := c.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	}
	return 0
}
