package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"specphot/pkg/pipeline"
)

func pivotCmd() *cobra.Command {
	var o overrides
	cmd := &cobra.Command{
		Use:   "pivot",
		Short: "Print per-band pivot wavelengths without reading a cube",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.apply(cmd, cfg)
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}

			_, pivots, err := p.Pivots()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BAND\tPIVOT [A]")
			for _, bp := range pivots {
				if bp.Err != nil {
					fmt.Fprintf(w, "%s\terror: %v\n", bp.Band, bp.Err)
					continue
				}
				fmt.Fprintf(w, "%s\t%.1f\n", bp.Band, bp.Pivot)
			}
			w.Flush()
			return err
		},
	}
	o.bind(cmd, false)
	return cmd
}
