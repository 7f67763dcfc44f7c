// Package commands defines the specphot CLI.
//
// Commands
//
//   - run            Synthesise AB surface-brightness images from a datacube
//   - pivot          Print per-band pivot wavelengths without reading a cube
//   - plot-filters   Plot the resolved filter responses on the spectral grid
//   - catalog        List products recorded in the SQLite catalogue
//   - init-config    Write a default YAML configuration
//
// # Configuration
//
// The root command loads the YAML file named by --config before any
// subcommand runs. Flags given on the command line override the file.
package commands
