// Package visualization renders quicklook previews of surface-brightness
// images and plots of resolved filter responses.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"specphot/internal/models"
)

// Percentiles of the defined magnitudes mapped to white and black.
const (
	StretchLow  = 0.01
	StretchHigh = 0.99
)

// Quicklook maps a surface-brightness image to 16-bit grey. Brighter
// (numerically smaller) magnitudes are lighter; undefined pixels are black.
// Row 0 of the image is the top row of the result.
func Quicklook(img *models.SurfaceBrightnessImage) (*image.Gray16, error) {
	if img.Rows <= 0 || img.Cols <= 0 || len(img.Data) != img.Rows*img.Cols {
		return nil, fmt.Errorf("image %dx%d does not match %d samples", img.Rows, img.Cols, len(img.Data))
	}

	lo, hi, ok := stretch(img.Data)
	out := image.NewGray16(image.Rect(0, 0, img.Cols, img.Rows))
	if !ok {
		// nothing defined: all black
		return out, nil
	}

	for y := 0; y < img.Rows; y++ {
		for x := 0; x < img.Cols; x++ {
			m := img.At(y, x)
			if math.IsNaN(m) {
				continue
			}
			level := 1.0
			if hi > lo {
				level = (hi - m) / (hi - lo)
			}
			value := uint16(math.Max(0, math.Min(65535, level*65535)))
			out.SetGray16(x, y, color.Gray16{Y: value})
		}
	}
	return out, nil
}

// stretch returns the magnitude limits of the grey scale. ok is false when
// no sample is defined.
func stretch(data []float64) (lo, hi float64, ok bool) {
	finite := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	sort.Float64s(finite)
	lo = stat.Quantile(StretchLow, stat.Empirical, finite, nil)
	hi = stat.Quantile(StretchHigh, stat.Empirical, finite, nil)
	return lo, hi, true
}

// SaveQuicklook renders img and writes it to path. The format follows the
// extension: .jpg/.jpeg for JPEG, anything else PNG.
func SaveQuicklook(img *models.SurfaceBrightnessImage, path string) error {
	gray, err := Quicklook(img)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, gray, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(file, gray)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
