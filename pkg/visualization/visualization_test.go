package visualization

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specphot/internal/models"
	"specphot/pkg/photometry"
)

func gradientImage() *models.SurfaceBrightnessImage {
	rows, cols := 4, 5
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = 20 + float64(i)*0.1
	}
	data[7] = math.NaN()
	return &models.SurfaceBrightnessImage{Band: "g", Data: data, Rows: rows, Cols: cols}
}

func TestQuicklookStretch(t *testing.T) {
	img := gradientImage()
	gray, err := Quicklook(img)
	require.NoError(t, err)

	assert.Equal(t, 5, gray.Bounds().Dx())
	assert.Equal(t, 4, gray.Bounds().Dy())

	// brightest pixel white, faintest black, undefined black
	assert.Equal(t, uint16(65535), gray.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(0), gray.Gray16At(4, 3).Y)
	assert.Equal(t, uint16(0), gray.Gray16At(2, 1).Y)

	// brighter magnitudes are lighter along a row
	assert.Greater(t, gray.Gray16At(1, 0).Y, gray.Gray16At(2, 0).Y)
}

func TestQuicklookAllUndefined(t *testing.T) {
	img := &models.SurfaceBrightnessImage{Data: []float64{math.NaN(), math.NaN()}, Rows: 1, Cols: 2}
	gray, err := Quicklook(img)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), gray.Gray16At(1, 0).Y)
}

func TestQuicklookShapeMismatch(t *testing.T) {
	img := &models.SurfaceBrightnessImage{Data: []float64{1, 2, 3}, Rows: 2, Cols: 2}
	_, err := Quicklook(img)
	assert.Error(t, err)
}

func TestSaveQuicklookPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ql", "photo_g.png")
	require.NoError(t, SaveQuicklook(gradientImage(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 5, decoded.Bounds().Dx())
	assert.Equal(t, 4, decoded.Bounds().Dy())
}

func TestSaveQuicklookJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo_g.jpg")
	require.NoError(t, SaveQuicklook(gradientImage(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotResponses(t *testing.T) {
	grid := models.SpectralGrid{Wavelengths: []float64{4000, 5000, 6000, 7000}, BinWidth: 1000}
	responses := map[photometry.Band][]float64{
		photometry.BandG: {0, 1, 0.5, 0},
		photometry.BandR: {0, 0, 1, 0.2},
	}

	path := filepath.Join(t.TempDir(), "responses.png")
	require.NoError(t, PlotResponses(grid, responses, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotResponsesErrors(t *testing.T) {
	grid := models.SpectralGrid{Wavelengths: []float64{4000, 5000, 6000}, BinWidth: 1000}
	path := filepath.Join(t.TempDir(), "responses.png")

	assert.Error(t, PlotResponses(grid, nil, path))
	assert.Error(t, PlotResponses(grid, map[photometry.Band][]float64{photometry.BandG: {1, 2}}, path))
	assert.Error(t, PlotResponses(grid, map[photometry.Band][]float64{"y": {1, 2, 3}}, path))
}
