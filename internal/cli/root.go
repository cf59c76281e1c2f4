package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/edgegen/internal/config"
	"github.com/example/edgegen/internal/entities"
	"github.com/example/edgegen/internal/ports/primary"
	"github.com/example/edgegen/internal/version"
	"github.com/example/edgegen/internal/wire"
)

// RootCmd returns the edgegen command tree. Run without a subcommand it customizes every entity.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "edgegen [keys...]",
		Short:   "Generate entity edge-test pages from the demo page",
		Version: version.String(),
		Long: `edgegen copies edge-tests-demo/script.js and edge-tests-demo/style.css into
edge-tests-<key>/ for every configured entity, rewriting demo names, endpoints,
labels and identifier fields for that entity.

Examples:
  edgegen
  edgegen customize cart coupon --dry-run
  edgegen --root ~/src/dev-tools --jobs 4 --keep-going`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCustomize,
	}

	rootCmd.PersistentFlags().String("root", "", "Developer-tools root containing edge-tests-demo (default: current directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-ledger", false, "Do not record runs in .edgegen/ledger.db")
	addRunFlags(rootCmd)

	rootCmd.AddCommand(CustomizeCmd())
	rootCmd.AddCommand(EntitiesCmd())
	rootCmd.AddCommand(HistoryCmd())
	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(WatchCmd())

	return rootCmd
}

// addRunFlags registers the flags shared by every command that runs the customizer.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("keep-going", false, "Skip entities whose directory cannot be written instead of aborting")
	cmd.Flags().IntP("jobs", "j", 1, "Number of entities to customize concurrently")
	cmd.Flags().Bool("dry-run", false, "Report what would change without writing files")
	cmd.Flags().Bool("strict", false, "Fail when generated output still contains demo markers")
}

// settings is the config file merged with command-line flags.
type settings struct {
	root    string
	verbose bool
	cfg     *config.Config
}

// loadSettings reads <root>/.edgegen/config.yaml and applies any flags that were set.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	root, _ := cmd.Flags().GetString("root")
	verbose, _ := cmd.Flags().GetBool("verbose")

	dir := root
	if dir == "" {
		dir = "."
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("no-ledger") {
		noLedger, _ := flags.GetBool("no-ledger")
		cfg.Ledger = !noLedger
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing, _ = flags.GetBool("keep-going")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
		if cfg.Jobs < 1 {
			return nil, fmt.Errorf("--jobs must be at least 1, got %d", cfg.Jobs)
		}
	}

	return &settings{root: root, verbose: verbose, cfg: cfg}, nil
}

func (s *settings) options() wire.Options {
	return wire.Options{
		Root:       s.root,
		SourceDir:  s.cfg.SourceDir,
		CreateDirs: s.cfg.CreateDirs,
		Ledger:     s.cfg.Ledger,
		Verbose:    s.verbose,
	}
}

// request builds a run request for the given entity keys (all entities when empty).
func (s *settings) request(cmd *cobra.Command, keys []string) (primary.RunRequest, error) {
	table, err := s.table(keys)
	if err != nil {
		return primary.RunRequest{}, err
	}

	req := primary.RunRequest{
		Entities:  table,
		KeepGoing: s.cfg.KeepGoing,
		Jobs:      s.cfg.Jobs,
	}
	if cmd.Flags().Lookup("dry-run") != nil {
		req.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}
	if cmd.Flags().Lookup("strict") != nil {
		req.Strict, _ = cmd.Flags().GetBool("strict")
	}
	return req, nil
}

func (s *settings) table(keys []string) (entities.Table, error) {
	return s.cfg.Table().Lookup(keys...)
}
