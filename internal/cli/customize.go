package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/edgegen/internal/wire"
)

// CustomizeCmd returns the customize command
func CustomizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customize [keys...]",
		Short: "Generate edge-test pages for all or selected entities",
		Long: `Generate edge-tests-<key>/script.js and edge-tests-<key>/style.css from the demo page.

With no keys every configured entity is generated, in table order. The run stops
at the first failure unless --keep-going is set, in which case entities whose
directory cannot be written are skipped and reported.

Examples:
  edgegen customize
  edgegen customize cart gateway-1
  edgegen customize --strict --jobs 4`,
		RunE: runCustomize,
	}
	addRunFlags(cmd)
	return cmd
}

func runCustomize(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	req, err := s.request(cmd, args)
	if err != nil {
		return err
	}

	application, err := wire.New(s.options())
	if err != nil {
		return err
	}
	defer application.Close()

	return application.CustomizeAdapterWithOutput(cmd.OutOrStdout()).Run(cmd.Context(), req)
}
