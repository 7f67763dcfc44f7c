// Package config provides configuration loading and management for specphot.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	perrors "specphot/pkg/errors"
	"specphot/pkg/photometry"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Synthesis parameters
	Pipeline struct {
		// Redshift stretches the wavelength grid and dims the output
		Redshift float64 `yaml:"redshift"`

		// Airmass of the extinction correction; 0 removes the atmosphere
		Airmass float64 `yaml:"airmass"`

		// Bands lists the filters to process
		Bands []string `yaml:"bands"`

		// Overwrite allows replacing existing output images
		Overwrite bool `yaml:"overwrite"`

		// NumCores bounds how many bands are processed at once
		NumCores int `yaml:"numCores"`
	} `yaml:"pipeline"`

	// Input and output locations
	Paths struct {
		// Cube is the FITS datacube in W/m2/micron/arcsec2
		Cube string `yaml:"cube"`

		// Wavelengths is the table of cube wavelengths in microns
		Wavelengths string `yaml:"wavelengths"`

		// FilterDir holds the filter response and extinction files
		FilterDir string `yaml:"filterDir"`

		// FilterTemplate names a band's filter file; {Band} is replaced by
		// the upper-case band and {band} by the lower-case band
		FilterTemplate string `yaml:"filterTemplate"`

		// ExtinctionFile is resolved relative to FilterDir unless absolute
		ExtinctionFile string `yaml:"extinctionFile"`

		// OutputTemplate names a band's output image, with the same
		// placeholders as FilterTemplate
		OutputTemplate string `yaml:"outputTemplate"`

		// Catalog is an optional SQLite product catalogue
		Catalog string `yaml:"catalog"`
	} `yaml:"paths"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`

		// QuicklookDir receives PNG previews of each image when set
		QuicklookDir string `yaml:"quicklookDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Pipeline.Redshift = 0.05
	cfg.Pipeline.Airmass = 0
	cfg.Pipeline.Bands = []string{"g", "r", "i"}
	cfg.Pipeline.Overwrite = false
	cfg.Pipeline.NumCores = runtime.NumCPU()

	cfg.Paths.FilterTemplate = "{Band}_CFIS.res"
	cfg.Paths.ExtinctionFile = "CFIS_extinction.txt"
	cfg.Paths.OutputTemplate = "photo_{band}.fits"

	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, perrors.Wrap(perrors.KindConfiguration, "parse config file", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Validate checks parameter ranges, band names and the paths every command
// needs. The cube path is only required by a full run and is checked there.
// Validate does not touch the filesystem.
func (c *Config) Validate() error {
	p := c.Pipeline
	if math.IsNaN(p.Redshift) || math.IsInf(p.Redshift, 0) || p.Redshift < 0 {
		return perrors.Configurationf("validate config", "redshift must be >= 0, got %g", p.Redshift)
	}
	if math.IsNaN(p.Airmass) || math.IsInf(p.Airmass, 0) || p.Airmass < 0 {
		return perrors.Configurationf("validate config", "airmass must be >= 0, got %g", p.Airmass)
	}
	if _, err := photometry.ParseBands(p.Bands); err != nil {
		return err
	}

	required := []struct{ name, value string }{
		{"paths.wavelengths", c.Paths.Wavelengths},
		{"paths.filterDir", c.Paths.FilterDir},
		{"paths.filterTemplate", c.Paths.FilterTemplate},
		{"paths.extinctionFile", c.Paths.ExtinctionFile},
		{"paths.outputTemplate", c.Paths.OutputTemplate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return perrors.Configurationf("validate config", "%s is required", r.name)
		}
	}
	if !strings.Contains(c.Paths.OutputTemplate, "{band}") && !strings.Contains(c.Paths.OutputTemplate, "{Band}") {
		return perrors.Configurationf("validate config", "paths.outputTemplate %q must contain {band} so bands do not overwrite each other", c.Paths.OutputTemplate)
	}
	return nil
}

// ExpandTemplate substitutes the band into a file name template
func ExpandTemplate(template string, band photometry.Band) string {
	r := strings.NewReplacer("{Band}", band.FileStem(), "{band}", string(band))
	return r.Replace(template)
}

// FilterPath returns the filter response file for band
func (c *Config) FilterPath(band photometry.Band) string {
	return filepath.Join(c.Paths.FilterDir, ExpandTemplate(c.Paths.FilterTemplate, band))
}

// ExtinctionPath returns the extinction table location
func (c *Config) ExtinctionPath() string {
	if filepath.IsAbs(c.Paths.ExtinctionFile) {
		return c.Paths.ExtinctionFile
	}
	return filepath.Join(c.Paths.FilterDir, c.Paths.ExtinctionFile)
}

// OutputPath returns the output image location for band
func (c *Config) OutputPath(band photometry.Band) string {
	return ExpandTemplate(c.Paths.OutputTemplate, band)
}
