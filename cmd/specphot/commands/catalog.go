package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"specphot/pkg/catalog"
)

func catalogCmd() *cobra.Command {
	var path, runID, band string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List products recorded in the SQLite catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = cfg.Paths.Catalog
			}
			if path == "" {
				return fmt.Errorf("no catalogue configured (--catalog or paths.catalog)")
			}
			store, err := catalog.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			var products []*catalog.Product
			switch {
			case runID != "":
				products, err = store.ListByRun(runID)
			case band != "":
				products, err = store.ListByBand(band)
			default:
				products, err = store.ListAll()
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tRUN\tBAND\tPIVOT [A]\tZ\tAIRMASS\tUNDEF\tPATH")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%g\t%g\t%d\t%s\n",
					time.Unix(0, p.CreatedAtNs).UTC().Format(time.RFC3339),
					p.RunID, p.Band, p.PivotAngstrom, p.Redshift, p.Airmass, p.UndefinedPixels, p.Path)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&path, "catalog", "", "SQLite product catalogue (default: config)")
	cmd.Flags().StringVar(&runID, "run", "", "only products of this run")
	cmd.Flags().StringVarP(&band, "band", "b", "", "only products of this band")
	return cmd
}
