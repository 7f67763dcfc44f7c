package photometry

import (
	"strings"

	perrors "specphot/pkg/errors"
)

// Band identifies a broadband filter
type Band string

// Supported bands
const (
	BandU Band = "u"
	BandG Band = "g"
	BandR Band = "r"
	BandI Band = "i"
	BandZ Band = "z"
)

// AllBands lists the supported bands in wavelength order
var AllBands = []Band{BandU, BandG, BandR, BandI, BandZ}

// DefaultBands are processed when no bands are requested
var DefaultBands = []Band{BandG, BandR, BandI}

// IsValid checks if the band is one of AllBands
func (b Band) IsValid() bool {
	for _, v := range AllBands {
		if b == v {
			return true
		}
	}
	return false
}

// FileStem is the band name as it appears in filter file names ("G" for g)
func (b Band) FileStem() string {
	return strings.ToUpper(string(b))
}

func (b Band) String() string { return string(b) }

// ParseBand parses a band identifier, ignoring case and surrounding space
func ParseBand(s string) (Band, error) {
	b := Band(strings.ToLower(strings.TrimSpace(s)))
	if !b.IsValid() {
		return "", perrors.Configurationf("parse band", "unknown band %q (valid: %s)", s, ValidBandsString())
	}
	return b, nil
}

// ParseBands parses a list of identifiers, dropping duplicates while
// keeping the first-seen order. An empty list yields DefaultBands.
func ParseBands(ids []string) ([]Band, error) {
	if len(ids) == 0 {
		return append([]Band(nil), DefaultBands...), nil
	}

	seen := make(map[Band]bool, len(ids))
	bands := make([]Band, 0, len(ids))
	for _, id := range ids {
		b, err := ParseBand(id)
		if err != nil {
			return nil, err
		}
		if seen[b] {
			continue
		}
		seen[b] = true
		bands = append(bands, b)
	}
	return bands, nil
}

// ValidBandsString returns a comma-separated list of bands for error messages
func ValidBandsString() string {
	names := make([]string, len(AllBands))
	for i, b := range AllBands {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}
