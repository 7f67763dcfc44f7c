// Package pipeline turns a spectral datacube into one AB surface-brightness
// image per requested band.
//
// The run follows a fixed sequence of steps:
//  1. Build the observed-frame spectral grid from the wavelength table
//  2. Read the datacube and check it against the grid
//  3. Load the atmospheric extinction table
//  4. Synthesise every band in parallel, writing each image atomically
//  5. Report per-band results
//
// Every requested band must have a filter file before anything is read.
// After that a failing band emits nothing and does not stop the others.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"specphot/internal/models"
	"specphot/internal/monitoring"
	"specphot/pkg/catalog"
	"specphot/pkg/config"
	perrors "specphot/pkg/errors"
	"specphot/pkg/imageio"
	"specphot/pkg/photometry"
	"specphot/pkg/spectral"
	"specphot/pkg/tables"
	"specphot/pkg/visualization"
)

// BandResult is the outcome of one band
type BandResult struct {
	Band photometry.Band

	// Image is nil when Err is set
	Image *models.SurfaceBrightnessImage

	// OutputPath is where the image was (or would have been) written
	OutputPath string

	// ProductID is the catalogue identifier, empty without a catalogue
	ProductID string

	// Undefined counts pixels carrying the undefined-magnitude marker
	Undefined int

	Err error
}

// Report summarises a run
type Report struct {
	RunID    string
	Grid     models.SpectralGrid
	Results  []BandResult
	Duration time.Duration
}

// Succeeded returns the bands that were written
func (r *Report) Succeeded() []photometry.Band {
	var bands []photometry.Band
	for _, res := range r.Results {
		if res.Err == nil {
			bands = append(bands, res.Band)
		}
	}
	return bands
}

// Pipeline runs the synthesis for a validated configuration
type Pipeline struct {
	cfg   *config.Config
	bands []photometry.Band
}

// New validates cfg and returns a pipeline for it. Nothing is read or
// written until Process or Pivots is called, so a bad band name never
// leaves a partial output behind.
func New(cfg *config.Config) (*Pipeline, error) {
	if cfg == nil {
		return nil, perrors.Configurationf("new pipeline", "no configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bands, err := photometry.ParseBands(cfg.Pipeline.Bands)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, bands: bands}, nil
}

// Bands returns the bands the pipeline will process, in request order
func (p *Pipeline) Bands() []photometry.Band {
	return append([]photometry.Band(nil), p.bands...)
}

// Process runs the complete pipeline. The returned error joins every band
// failure; the report is non-nil whenever the shared inputs could be loaded.
func (p *Pipeline) Process() (*Report, error) {
	start := time.Now()
	if p.cfg.Paths.Cube == "" {
		return nil, perrors.Configurationf("read datacube", "paths.cube is required")
	}
	if err := p.checkFilters(); err != nil {
		return nil, err
	}

	// Step 1: Build the spectral grid
	monitoring.Logf("Step 1: Building spectral grid from %s (z = %g)...", p.cfg.Paths.Wavelengths, p.cfg.Pipeline.Redshift)
	grid, err := p.loadGrid()
	if err != nil {
		return nil, err
	}

	// Step 2: Read the datacube
	monitoring.Logf("Step 2: Reading datacube %s...", p.cfg.Paths.Cube)
	cube, err := imageio.ReadCube(p.cfg.Paths.Cube)
	if err != nil {
		return nil, err
	}
	if cube.Waves != grid.Len() {
		return nil, perrors.Configurationf("read datacube", "%s has %d wavelength planes, wavelength table has %d",
			p.cfg.Paths.Cube, cube.Waves, grid.Len())
	}
	monitoring.Logf("Datacube: %d x %d pixels, %d planes", cube.Rows, cube.Cols, cube.Waves)

	// Step 3: Load the extinction table
	monitoring.Logf("Step 3: Loading extinction table %s...", p.cfg.ExtinctionPath())
	ext, err := tables.LoadExtinctionCurve(p.cfg.ExtinctionPath())
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   catalog.NewRunID(),
		Grid:    grid,
		Results: make([]BandResult, len(p.bands)),
	}

	var store *catalog.Store
	if p.cfg.Paths.Catalog != "" {
		store, err = catalog.Open(p.cfg.Paths.Catalog)
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}

	// Step 4: Synthesise the bands
	monitoring.Logf("Step 4: Synthesising %d band(s) on %d worker(s)...", len(p.bands), p.workers())
	var g errgroup.Group
	g.SetLimit(p.workers())
	for i, band := range p.bands {
		i, band := i, band
		g.Go(func() error {
			report.Results[i] = p.processBand(band, grid, cube, ext, report.RunID, store)
			return nil
		})
	}
	g.Wait()

	// Step 5: Report
	report.Duration = time.Since(start)
	var errs []error
	for _, res := range report.Results {
		if res.Err != nil {
			monitoring.Warnf("band %s failed: %v", res.Band, res.Err)
			errs = append(errs, res.Err)
		}
	}
	monitoring.Logf("Step 5: %d of %d band(s) written in %v (run %s)",
		len(report.Succeeded()), len(p.bands), report.Duration.Round(time.Millisecond), report.RunID)

	return report, errors.Join(errs...)
}

func (p *Pipeline) workers() int {
	n := p.cfg.Pipeline.NumCores
	if n <= 0 {
		n = 1
	}
	if n > len(p.bands) {
		n = len(p.bands)
	}
	return n
}

// checkFilters fails when any requested band has no filter file, so a
// misconfigured band list is reported before the first image is written.
func (p *Pipeline) checkFilters() error {
	var errs []error
	for _, band := range p.bands {
		path := p.cfg.FilterPath(band)
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, perrors.WithBand(
				perrors.Configurationf("find filter", "no filter file for band %s: %v", band, err), string(band)))
		}
	}
	return errors.Join(errs...)
}

func (p *Pipeline) loadGrid() (models.SpectralGrid, error) {
	microns, err := tables.LoadWavelengths(p.cfg.Paths.Wavelengths)
	if err != nil {
		return models.SpectralGrid{}, err
	}
	return spectral.BuildGrid(microns, p.cfg.Pipeline.Redshift)
}

// processBand produces, writes and records one band. Errors carry the band.
func (p *Pipeline) processBand(band photometry.Band, grid models.SpectralGrid, cube *models.Datacube,
	ext models.ExtinctionCurve, runID string, store *catalog.Store) BandResult {

	res := BandResult{Band: band, OutputPath: p.cfg.OutputPath(band)}
	fail := func(err error) BandResult {
		res.Err = perrors.WithBand(err, string(band))
		return res
	}

	// refuse early rather than after the integration
	if err := imageio.CheckWritable(res.OutputPath, p.cfg.Pipeline.Overwrite); err != nil {
		return fail(err)
	}

	filter, err := tables.LoadFilterCurve(p.cfg.FilterPath(band), string(band))
	if err != nil {
		return fail(err)
	}

	product, err := photometry.ProcessBand(band, grid, cube, filter, ext, p.cfg.Pipeline.Airmass)
	if err != nil {
		res.Err = err
		return res
	}
	monitoring.Logf("Band %s: pivot wavelength %.1f Angstrom, %d undefined pixel(s)",
		band, product.Image.PivotWavelength, product.Undefined)

	if err := imageio.WriteImage(res.OutputPath, product.Image, p.cfg.Pipeline.Overwrite); err != nil {
		return fail(err)
	}
	res.Image = product.Image
	res.Undefined = product.Undefined

	if store != nil {
		record := &catalog.Product{
			RunID:           runID,
			Band:            string(band),
			Path:            absPath(res.OutputPath),
			PivotAngstrom:   product.Image.PivotWavelength,
			Redshift:        product.Image.Redshift,
			Airmass:         product.Image.Airmass,
			Rows:            product.Image.Rows,
			Cols:            product.Image.Cols,
			UndefinedPixels: product.Undefined,
		}
		if err := store.Insert(record); err != nil {
			monitoring.Warnf("band %s: catalogue: %v", band, err)
		} else {
			res.ProductID = record.ProductID
		}
	}

	if dir := p.cfg.Output.QuicklookDir; dir != "" {
		path := filepath.Join(dir, quicklookName(res.OutputPath))
		if err := visualization.SaveQuicklook(product.Image, path); err != nil {
			monitoring.Warnf("band %s: quicklook: %v", band, err)
		}
	}

	return res
}

func quicklookName(outputPath string) string {
	base := filepath.Base(outputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// BandPivot is the resolved response of one band
type BandPivot struct {
	Band     photometry.Band
	Pivot    float64
	Response []float64
	Err      error
}

// Pivots resolves every band's response on the grid and returns its pivot
// wavelength. No datacube is read and nothing is written.
func (p *Pipeline) Pivots() (models.SpectralGrid, []BandPivot, error) {
	grid, err := p.loadGrid()
	if err != nil {
		return models.SpectralGrid{}, nil, err
	}
	ext, err := tables.LoadExtinctionCurve(p.cfg.ExtinctionPath())
	if err != nil {
		return models.SpectralGrid{}, nil, err
	}

	pivots := make([]BandPivot, len(p.bands))
	var errs []error
	for i, band := range p.bands {
		pivots[i] = p.pivot(band, grid, ext)
		if pivots[i].Err != nil {
			errs = append(errs, pivots[i].Err)
		}
	}
	return grid, pivots, errors.Join(errs...)
}

func (p *Pipeline) pivot(band photometry.Band, grid models.SpectralGrid, ext models.ExtinctionCurve) BandPivot {
	bp := BandPivot{Band: band}
	filter, err := tables.LoadFilterCurve(p.cfg.FilterPath(band), string(band))
	if err != nil {
		bp.Err = perrors.WithBand(err, string(band))
		return bp
	}
	response, err := photometry.ResolveFilter(filter, grid, ext, p.cfg.Pipeline.Airmass)
	if err != nil {
		bp.Err = perrors.WithBand(err, string(band))
		return bp
	}
	pivot2, err := photometry.PivotWavelength2(response, grid)
	if err != nil {
		bp.Err = perrors.WithBand(err, string(band))
		return bp
	}
	bp.Pivot = photometry.RoundPivot(pivot2)
	bp.Response = response
	return bp
}

// String formats a one-line summary of the result
func (r BandResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: FAILED: %v", r.Band, r.Err)
	}
	return fmt.Sprintf("%s: %s (pivot %.1f A, %d undefined)", r.Band, r.OutputPath, r.Image.PivotWavelength, r.Undefined)
}
