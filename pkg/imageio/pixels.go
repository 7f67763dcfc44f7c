package imageio

import (
	"fmt"
	"math"

	"github.com/astrogo/fitsio"
)

// readPixels reads n pixels of any BITPIX as float64, applying BSCALE and
// BZERO. Integer pixels equal to BLANK become NaN.
func readPixels(img fitsio.Image, n int) ([]float64, error) {
	hdr := img.Header()
	out := make([]float64, n)

	var raw []int64
	switch bitpix := hdr.Bitpix(); bitpix {
	case -64:
		if err := img.Read(&out); err != nil {
			return nil, err
		}
	case -32:
		buf := make([]float32, n)
		if err := img.Read(&buf); err != nil {
			return nil, err
		}
		for i, v := range buf {
			out[i] = float64(v)
		}
	case 8:
		buf := make([]byte, n)
		if err := img.Read(&buf); err != nil {
			return nil, err
		}
		raw = make([]int64, n)
		for i, v := range buf {
			raw[i] = int64(v)
		}
	case 16:
		buf := make([]int16, n)
		if err := img.Read(&buf); err != nil {
			return nil, err
		}
		raw = make([]int64, n)
		for i, v := range buf {
			raw[i] = int64(v)
		}
	case 32:
		buf := make([]int32, n)
		if err := img.Read(&buf); err != nil {
			return nil, err
		}
		raw = make([]int64, n)
		for i, v := range buf {
			raw[i] = int64(v)
		}
	case 64:
		raw = make([]int64, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
	}

	scale, err := cardFloat(hdr, "BSCALE", 1)
	if err != nil {
		return nil, err
	}
	zero, err := cardFloat(hdr, "BZERO", 0)
	if err != nil {
		return nil, err
	}

	if raw != nil {
		blank, hasBlank := cardInt(hdr, "BLANK")
		for i, v := range raw {
			if hasBlank && v == blank {
				out[i] = math.NaN()
				continue
			}
			out[i] = zero + scale*float64(v)
		}
		return out, nil
	}

	if scale != 1 || zero != 0 {
		for i, v := range out {
			out[i] = zero + scale*v
		}
	}
	return out, nil
}

func cardFloat(hdr *fitsio.Header, key string, def float64) (float64, error) {
	card := hdr.Get(key)
	if card == nil {
		return def, nil
	}
	switch v := card.Value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%s has non-numeric value %v", key, card.Value)
}

func cardInt(hdr *fitsio.Header, key string) (int64, bool) {
	card := hdr.Get(key)
	if card == nil {
		return 0, false
	}
	switch v := card.Value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}
