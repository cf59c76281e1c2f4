package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/edgegen/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a demo page template",
		Long: `Write edge-tests-demo/script.js and edge-tests-demo/style.css using placeholder
tokens such as {{DISPLAY_NAME}} and {{ID_FIELD}}. Existing files are kept unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			// Seeding records nothing, so init never touches the ledger.
			opts := s.options()
			opts.Ledger = false

			application, err := wire.New(opts)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.CustomizeAdapterWithOutput(cmd.OutOrStdout()).Seed(cmd.Context(), force)
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing demo page")
	return cmd
}
