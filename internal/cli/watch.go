package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/edgegen/internal/ports/primary"
	"github.com/example/edgegen/internal/wire"
)

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [keys...]",
		Short: "Regenerate edge-test pages whenever the demo page changes",
		Long: `Run customize once, then again each time edge-tests-demo/script.js or
edge-tests-demo/style.css is saved. Failed runs are reported and watching continues.
Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			adapter := application.CustomizeAdapterWithOutput(cmd.OutOrStdout())
			out := cmd.OutOrStdout()
			w := application.Watcher(req, func(result *primary.RunResult, err error) {
				if result != nil {
					adapter.PrintResult(result)
				}
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
				}
				fmt.Fprintln(out, "Watching for changes...")
			})
			return w.Watch(cmd.Context())
		},
	}
	addRunFlags(cmd)
	return cmd
}
