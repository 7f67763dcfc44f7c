package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"specphot/pkg/pipeline"
)

func runCmd() *cobra.Command {
	var o overrides
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Synthesise AB surface-brightness images from a datacube",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.apply(cmd, cfg)
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}

			report, err := p.Process()
			if report != nil {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s (%.2f s)\n", report.RunID, report.Duration.Seconds())
				for _, res := range report.Results {
					fmt.Fprintf(out, "  %s\n", res)
				}
			}
			return err
		},
	}
	o.bind(cmd, true)
	return cmd
}
