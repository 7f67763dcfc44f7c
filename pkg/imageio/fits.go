// Package imageio reads spectral datacubes and writes surface-brightness
// images as FITS primary HDUs.
package imageio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrogo/fitsio"

	"specphot/internal/models"
	perrors "specphot/pkg/errors"
)

// structural reports whether a header key describes the data layout. These
// are written by the encoder from the pixel array and never copied.
func structural(key string) bool {
	switch key {
	case "SIMPLE", "XTENSION", "BITPIX", "NAXIS", "EXTEND", "PCOUNT", "GCOUNT", "END", "BSCALE", "BZERO", "BLANK":
		return true
	}
	return strings.HasPrefix(key, "NAXIS")
}

// ReadCube loads a three-axis FITS primary image as a datacube. FITS axis 1
// is the column axis, axis 2 the row axis and axis 3 the wavelength axis.
// Pixels of any BITPIX are widened to float64 with BSCALE/BZERO applied.
func ReadCube(path string) (*models.Datacube, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "open datacube", err)
	}
	defer f.Close()

	fits, err := fitsio.Open(f)
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "decode datacube "+path, err)
	}
	defer fits.Close()

	img, ok := fits.HDU(0).(fitsio.Image)
	if !ok {
		return nil, perrors.Configurationf("read datacube", "%s: primary HDU is not an image", path)
	}

	axes := img.Header().Axes()
	if len(axes) != 3 {
		return nil, perrors.Configurationf("read datacube", "%s: expected 3 axes, found %d", path, len(axes))
	}

	cube := models.NewDatacube(axes[1], axes[0], axes[2])
	data, err := readPixels(img, len(cube.Data))
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "read datacube pixels", err)
	}
	cube.Data = data
	cube.Header = fromFITSHeader(img.Header())
	return cube, nil
}

// WriteImage writes a surface-brightness image. An existing file at path is
// an output conflict unless overwrite is set. The image is written to a
// temporary file in the same directory and renamed into place, so a failed
// write never leaves a partial product behind.
func WriteImage(path string, img *models.SurfaceBrightnessImage, overwrite bool) error {
	if img == nil || len(img.Data) != img.Rows*img.Cols {
		return fmt.Errorf("write %s: image data does not match its dimensions", path)
	}
	return writeHDU(path, overwrite, []int{img.Cols, img.Rows}, img.Data, img.Header)
}

// WriteCube writes a datacube with the same layout ReadCube expects.
func WriteCube(path string, cube *models.Datacube, overwrite bool) error {
	return writeHDU(path, overwrite, []int{cube.Cols, cube.Rows, cube.Waves}, cube.Data, cube.Header)
}

// CheckWritable returns an output conflict if path exists and overwrite is
// not set.
func CheckWritable(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return perrors.OutputConflict(path)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

func writeHDU(path string, overwrite bool, axes []int, data []float64, header models.Header) error {
	if err := CheckWritable(path, overwrite); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary output: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if err := encode(tmp, axes, data, header); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary output: %w", err)
	}

	// a file may have appeared while we were encoding
	if err := CheckWritable(path, overwrite); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename output into place: %w", err)
	}
	committed = true
	return nil
}

func encode(w *os.File, axes []int, data []float64, header models.Header) error {
	fits, err := fitsio.Create(w)
	if err != nil {
		return err
	}

	img := fitsio.NewImage(-64, axes)
	defer img.Close()

	if err := img.Header().Append(toFITSCards(header)...); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if err := img.Write(data); err != nil {
		return fmt.Errorf("pixels: %w", err)
	}
	if err := fits.Write(img); err != nil {
		return err
	}
	return fits.Close()
}

func fromFITSHeader(hdr *fitsio.Header) models.Header {
	var h models.Header
	for _, key := range hdr.Keys() {
		if structural(key) {
			continue
		}
		card := hdr.Get(key)
		if card == nil {
			continue
		}
		value := card.Value
		// string values come back blank-padded to the FITS minimum width
		if s, ok := value.(string); ok {
			value = strings.TrimRight(s, " ")
		}
		h = append(h, models.Card{Key: card.Name, Value: value, Comment: card.Comment})
	}
	return h
}

func toFITSCards(h models.Header) []fitsio.Card {
	seen := make(map[string]bool, len(h))
	cards := make([]fitsio.Card, 0, len(h))
	for _, c := range h {
		key := strings.ToUpper(c.Key)
		if structural(key) {
			continue
		}
		switch key {
		case "COMMENT", "HISTORY", "":
		default:
			if c.Value == nil || seen[key] {
				continue
			}
			seen[key] = true
		}
		cards = append(cards, fitsio.Card{Name: key, Value: c.Value, Comment: c.Comment})
	}
	return cards
}
