package commands

import (
	"github.com/spf13/cobra"

	"specphot/internal/monitoring"
	"specphot/pkg/config"
)

var (
	configPath string
	quiet      bool
	cfg        *config.Config
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "specphot",
		Short:         "Synthetic broadband photometry from spectral datacubes",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if quiet || !cfg.Output.Verbose {
				monitoring.SetLogger(nil)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "specphot.yaml", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	root.AddCommand(runCmd(), pivotCmd(), plotFiltersCmd(), catalogCmd(), initConfigCmd())
	return root
}
