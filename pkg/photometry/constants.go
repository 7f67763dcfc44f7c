package photometry

// Physical constants and unit conversions of the synthesis chain.
const (
	// SpeedOfLight in m/s
	SpeedOfLight = 2.998e8

	// SpeedOfLightAngstrom in Angstrom/s
	SpeedOfLightAngstrom = SpeedOfLight * 1e10

	// ABZeroPoint is the AB reference flux density in Jy (1 maggy)
	ABZeroPoint = 3631.0

	// ReferenceAirmass is the airmass the raw filter curves are calibrated at
	ReferenceAirmass = 1.25

	// IntensityToJyHz converts W/m2/micron/arcsec2 to Jy*Hz/Angstrom/arcsec2
	IntensityToJyHz = 1e22

	// SurfaceBrightnessUnit labels emitted images
	SurfaceBrightnessUnit = "AB mag/arcsec2"
)
