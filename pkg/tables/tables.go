// Package tables loads the whitespace-delimited numeric tables that describe
// the wavelength axis, filter throughputs and atmospheric extinction.
//
// Lines that are blank or start with '#' are skipped; everything after a
// '#' on a data line is a comment.
package tables

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"specphot/internal/models"
	perrors "specphot/pkg/errors"
)

// Read parses a numeric table with a fixed number of columns per row. The
// result is column-major: cols[j][i] is column j of data row i.
func Read(r io.Reader) ([][]float64, error) {
	var cols [][]float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if cols == nil {
			cols = make([][]float64, len(fields))
		} else if len(fields) != len(cols) {
			return nil, fmt.Errorf("line %d: expected %d columns, found %d", line, len(cols), len(fields))
		}

		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, j+1, err)
			}
			cols[j] = append(cols[j], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

// ReadFile opens path and parses it with Read. A missing or malformed file
// is a configuration error.
func ReadFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "open table", err)
	}
	defer f.Close()

	cols, err := Read(f)
	if err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "parse "+path, err)
	}
	return cols, nil
}

// LoadWavelengths reads the datacube wavelength table (microns, first column)
func LoadWavelengths(path string) ([]float64, error) {
	cols, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, perrors.Configurationf("load wavelengths", "%s has no data rows", path)
	}
	return cols[0], nil
}

// LoadFilterCurve reads a two-column (wavelength, response) filter file
func LoadFilterCurve(path, band string) (models.FilterCurve, error) {
	xs, ys, err := loadPairs(path)
	if err != nil {
		return models.FilterCurve{}, err
	}
	return models.FilterCurve{Band: band, Wavelengths: xs, Response: ys}, nil
}

// LoadExtinctionCurve reads a two-column (wavelength, mag/airmass) table
func LoadExtinctionCurve(path string) (models.ExtinctionCurve, error) {
	xs, ys, err := loadPairs(path)
	if err != nil {
		return models.ExtinctionCurve{}, err
	}
	return models.ExtinctionCurve{Wavelengths: xs, Coefficients: ys}, nil
}

func loadPairs(path string) ([]float64, []float64, error) {
	cols, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if len(cols) < 2 {
		return nil, nil, perrors.Configurationf("load table", "%s needs at least 2 columns, found %d", path, len(cols))
	}
	if len(cols[0]) < 2 {
		return nil, nil, perrors.Configurationf("load table", "%s has %d rows, need at least 2", path, len(cols[0]))
	}
	for i := 1; i < len(cols[0]); i++ {
		if cols[0][i] <= cols[0][i-1] {
			return nil, nil, perrors.Configurationf("load table", "%s: wavelengths not strictly increasing at row %d", path, i+1)
		}
	}
	return cols[0], cols[1], nil
}
