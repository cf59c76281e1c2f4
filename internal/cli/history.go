package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/edgegen/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded customize runs",
		Long: `List runs recorded in .edgegen/ledger.db, newest first.
Given a run ID, list the files that run wrote with their digests.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			application, err := wire.New(s.options())
			if err != nil {
				return err
			}
			defer application.Close()

			adapter := application.HistoryAdapterWithOutput(cmd.OutOrStdout())
			if len(args) == 1 {
				return adapter.Show(cmd.Context(), args[0])
			}
			return adapter.List(cmd.Context(), limit)
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}
