package imageio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeRawFITS writes a primary image with the given BITPIX and extra cards
func writeRawFITS(t *testing.T, bitpix int, axes []int, data interface{}, cards ...fitsio.Card) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.fits")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	fits, err := fitsio.Create(f)
	require.NoError(t, err)
	img := fitsio.NewImage(bitpix, axes)
	defer img.Close()

	if len(cards) > 0 {
		require.NoError(t, img.Header().Append(cards...))
	}
	require.NoError(t, img.Write(data))
	require.NoError(t, fits.Write(img))
	require.NoError(t, fits.Close())
	return path
}

func TestReadCubeSinglePrecision(t *testing.T) {
	cols, rows, waves := 3, 2, 4
	data := make([]float32, cols*rows*waves)
	for i := range data {
		data[i] = float32(i) * 0.25
	}
	data[5] = float32(math.NaN())

	path := writeRawFITS(t, -32, []int{cols, rows, waves}, data,
		fitsio.Card{Name: "ORIGIN", Value: "SKIRT"})

	cube, err := ReadCube(path)
	require.NoError(t, err)
	assert.Equal(t, rows, cube.Rows)
	assert.Equal(t, cols, cube.Cols)
	assert.Equal(t, waves, cube.Waves)
	for i, v := range data {
		if i == 5 {
			assert.True(t, math.IsNaN(cube.Data[i]))
			continue
		}
		assert.Equal(t, float64(v), cube.Data[i], "pixel %d", i)
	}
	// layout: FITS axis 1 is the column axis
	assert.Equal(t, float64(data[1*cols*rows+1*cols+2]), cube.At(1, 2, 1))

	card, ok := cube.Header.Get("ORIGIN")
	require.True(t, ok)
	assert.Equal(t, "SKIRT", card.Value)
}

func TestReadCubeScaledIntegers(t *testing.T) {
	data := []int16{0, 1, 2, -32768, 4, 5, 6, 7}
	path := writeRawFITS(t, 16, []int{2, 2, 2}, data,
		fitsio.Card{Name: "BSCALE", Value: 0.5},
		fitsio.Card{Name: "BZERO", Value: 10.0},
		fitsio.Card{Name: "BLANK", Value: -32768},
	)

	cube, err := ReadCube(path)
	require.NoError(t, err)
	want := []float64{10, 10.5, 11, math.NaN(), 12, 12.5, 13, 13.5}
	for i, w := range want {
		if math.IsNaN(w) {
			assert.True(t, math.IsNaN(cube.Data[i]), "blank pixel %d", i)
			continue
		}
		assert.InDelta(t, w, cube.Data[i], 1e-12, "pixel %d", i)
	}

	// scaling keys describe the stored pixels and are not carried over
	_, ok := cube.Header.Get("BSCALE")
	assert.False(t, ok)
}

func TestReadCubeInt32(t *testing.T) {
	data := []int32{-3, 0, 7, 100000, 2, 1, 9, 8}
	path := writeRawFITS(t, 32, []int{2, 2, 2}, data)

	cube, err := ReadCube(path)
	require.NoError(t, err)
	for i, v := range data {
		assert.Equal(t, float64(v), cube.Data[i])
	}
}

func TestReadImageSinglePrecision(t *testing.T) {
	data := []float32{21.5, 22, float32(math.NaN()), 23.25, 24, 25}
	path := writeRawFITS(t, -32, []int{3, 2}, data,
		fitsio.Card{Name: "FILTER", Value: "r"},
		fitsio.Card{Name: "WLEFF", Value: 6221.4},
	)

	img, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Rows)
	assert.Equal(t, 3, img.Cols)
	assert.Equal(t, "r", img.Band)
	assert.InDelta(t, 6221.4, img.PivotWavelength, 1e-9)
	assert.True(t, math.IsNaN(img.At(0, 2)))
	assert.Equal(t, 23.25, img.At(1, 0))
}
