package models

// SpectralGrid is the observed-frame wavelength axis shared by every band
type SpectralGrid struct {
	// Wavelengths holds the strictly increasing samples in Angstrom
	Wavelengths []float64

	// BinWidth is the median spacing between consecutive samples in Angstrom
	BinWidth float64

	// Redshift is the redshift used to stretch the rest-frame samples
	Redshift float64
}

// Len returns the number of wavelength samples
func (g SpectralGrid) Len() int {
	return len(g.Wavelengths)
}

// Datacube holds the simulated specific intensity in
// W/m2/micron/arcsec2. Data is stored wavelength-major, the same order a
// FITS cube uses on disk: index = w*Rows*Cols + row*Cols + col.
type Datacube struct {
	// Data is the flattened intensity array
	Data []float64

	// Rows and Cols are the spatial dimensions
	Rows int
	Cols int

	// Waves is the length of the wavelength axis
	Waves int

	// Header is the metadata block read alongside the data
	Header Header
}

// NewDatacube allocates a zero-filled cube with the given dimensions
func NewDatacube(rows, cols, waves int) *Datacube {
	return &Datacube{
		Data:  make([]float64, rows*cols*waves),
		Rows:  rows,
		Cols:  cols,
		Waves: waves,
	}
}

// At returns the intensity at a spatial pixel and wavelength index
func (c *Datacube) At(row, col, w int) float64 {
	return c.Data[w*c.Rows*c.Cols+row*c.Cols+col]
}

// Set stores the intensity at a spatial pixel and wavelength index
func (c *Datacube) Set(row, col, w int, v float64) {
	c.Data[w*c.Rows*c.Cols+row*c.Cols+col] = v
}

// Plane returns the spatial image at wavelength index w. The returned slice
// aliases the cube data.
func (c *Datacube) Plane(w int) []float64 {
	n := c.Rows * c.Cols
	return c.Data[w*n : (w+1)*n]
}

// Pixels returns the number of spatial pixels
func (c *Datacube) Pixels() int {
	return c.Rows * c.Cols
}

// FilterCurve is a tabulated bandpass as read from a filter file
type FilterCurve struct {
	// Band is the identifier the curve was loaded for
	Band string

	// Wavelengths in Angstrom, increasing
	Wavelengths []float64

	// Response is the dimensionless throughput at each wavelength
	Response []float64
}

// ExtinctionCurve is a tabulated atmospheric extinction law
type ExtinctionCurve struct {
	// Wavelengths in Angstrom, increasing
	Wavelengths []float64

	// Coefficients in magnitudes per unit airmass
	Coefficients []float64
}

// SurfaceBrightnessImage is one emitted band product
type SurfaceBrightnessImage struct {
	// Band identifier (u, g, r, i or z)
	Band string

	// Data holds AB mag/arcsec2 in row-major order. Pixels without flux
	// carry the undefined-magnitude marker (NaN).
	Data []float64

	// Rows and Cols are the image dimensions
	Rows int
	Cols int

	// PivotWavelength is the band pivot wavelength in Angstrom, rounded to 0.1
	PivotWavelength float64

	// Redshift and Airmass are the synthesis parameters
	Redshift float64
	Airmass  float64

	// Unit labels the pixel values
	Unit string

	// Header is the provenance metadata written with the image
	Header Header
}

// At returns the value at a pixel
func (im *SurfaceBrightnessImage) At(row, col int) float64 {
	return im.Data[row*im.Cols+col]
}
