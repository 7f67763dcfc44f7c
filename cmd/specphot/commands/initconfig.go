package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"specphot/pkg/config"
	perrors "specphot/pkg/errors"
)

func initConfigCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a default YAML configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return perrors.OutputConflict(configPath)
			}
			if err := config.CreateDefaultConfigFile(configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to: %s\n", configPath)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing file")
	return cmd
}
