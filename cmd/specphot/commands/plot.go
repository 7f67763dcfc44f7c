package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"specphot/pkg/photometry"
	"specphot/pkg/pipeline"
	"specphot/pkg/visualization"
)

func plotFiltersCmd() *cobra.Command {
	var o overrides
	var out string
	cmd := &cobra.Command{
		Use:   "plot-filters",
		Short: "Plot the resolved filter responses on the spectral grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.apply(cmd, cfg)
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}

			grid, pivots, err := p.Pivots()
			if err != nil {
				return err
			}
			responses := make(map[photometry.Band][]float64, len(pivots))
			for _, bp := range pivots {
				responses[bp.Band] = bp.Response
			}
			if err := visualization.PlotResponses(grid, responses, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filter responses saved to: %s\n", out)
			return nil
		},
	}
	o.bind(cmd, false)
	cmd.Flags().StringVar(&out, "plot", "filters.png", "output figure (png, svg or pdf)")
	return cmd
}
