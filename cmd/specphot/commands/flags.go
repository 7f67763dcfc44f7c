package commands

import (
	"github.com/spf13/cobra"

	"specphot/pkg/config"
)

// overrides holds flags that replace configuration values when given
type overrides struct {
	cube, wavelengths, filterDir string
	output, catalog, quicklook   string
	bands                        []string
	redshift, airmass            float64
	overwrite                    bool
	cores                        int
}

func (o *overrides) bind(cmd *cobra.Command, withOutputs bool) {
	f := cmd.Flags()
	f.StringVar(&o.wavelengths, "wavelengths", "", "wavelength table in microns")
	f.StringVar(&o.filterDir, "filter-dir", "", "directory of filter response and extinction files")
	f.StringSliceVarP(&o.bands, "bands", "b", nil, "bands to process (u,g,r,i,z)")
	f.Float64VarP(&o.redshift, "redshift", "z", 0, "source redshift")
	f.Float64Var(&o.airmass, "airmass", 0, "airmass of the extinction correction")
	if !withOutputs {
		return
	}
	f.StringVar(&o.cube, "cube", "", "FITS datacube")
	f.StringVarP(&o.output, "output", "o", "", "output file template, {band} is replaced")
	f.StringVar(&o.catalog, "catalog", "", "SQLite product catalogue")
	f.StringVar(&o.quicklook, "quicklook-dir", "", "directory for PNG previews")
	f.BoolVar(&o.overwrite, "overwrite", false, "replace existing outputs")
	f.IntVar(&o.cores, "cores", 0, "bands processed in parallel (default: config)")
}

// apply copies every flag the user set into c
func (o *overrides) apply(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	set := func(name string) bool {
		fl := f.Lookup(name)
		return fl != nil && fl.Changed
	}

	if set("cube") {
		c.Paths.Cube = o.cube
	}
	if set("wavelengths") {
		c.Paths.Wavelengths = o.wavelengths
	}
	if set("filter-dir") {
		c.Paths.FilterDir = o.filterDir
	}
	if set("output") {
		c.Paths.OutputTemplate = o.output
	}
	if set("catalog") {
		c.Paths.Catalog = o.catalog
	}
	if set("quicklook-dir") {
		c.Output.QuicklookDir = o.quicklook
	}
	if set("bands") {
		c.Pipeline.Bands = o.bands
	}
	if set("redshift") {
		c.Pipeline.Redshift = o.redshift
	}
	if set("airmass") {
		c.Pipeline.Airmass = o.airmass
	}
	if set("overwrite") {
		c.Pipeline.Overwrite = o.overwrite
	}
	if set("cores") {
		c.Pipeline.NumCores = o.cores
	}
}
