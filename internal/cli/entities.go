package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/edgegen/internal/adapters/cli"
)

// EntitiesCmd returns the entities command
func EntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the configured entities",
		Long:  `List the entity table used by customize: the built-in table, or the one in .edgegen/config.yaml.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			cliadapter.PrintEntities(cmd.OutOrStdout(), s.cfg.Table())
			return nil
		},
	}
}
