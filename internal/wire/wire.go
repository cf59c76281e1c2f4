// Package wire provides dependency injection for the edgegen application.
// It assembles services for one developer-tools root.
package wire

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	cliadapter "github.com/example/edgegen/internal/adapters/cli"
	"github.com/example/edgegen/internal/adapters/filesystem"
	"github.com/example/edgegen/internal/adapters/sqlite"
	"github.com/example/edgegen/internal/app"
	"github.com/example/edgegen/internal/db"
	"github.com/example/edgegen/internal/logging"
	"github.com/example/edgegen/internal/ports/primary"
	"github.com/example/edgegen/internal/ports/secondary"
)

// Options selects the root and the optional parts of the stack.
type Options struct {
	Root       string
	SourceDir  string
	CreateDirs bool
	Ledger     bool
	Verbose    bool
}

// App holds the services for one root. Close releases the ledger and flushes the logger.
type App struct {
	Workspace *filesystem.WorkspaceAdapter
	Customize primary.CustomizeService
	History   primary.HistoryService
	Logger    *zap.Logger

	ledger *sqlite.LazyLedgerRepository
}

// New creates the adapters and services described by opts.
func New(opts Options) (*App, error) {
	logger, err := logging.New(opts.Verbose)
	if err != nil {
		return nil, err
	}

	// Create secondary adapters
	workspace, err := filesystem.NewWorkspaceAdapter(opts.Root, opts.SourceDir, opts.CreateDirs)
	if err != nil {
		return nil, err
	}

	a := &App{Workspace: workspace, Logger: logger}

	// The ledger stays an untyped nil when disabled so services can detect it.
	// When enabled it is opened on the first recorded run, so failed and dry runs leave no files.
	var ledger secondary.LedgerRepository
	if opts.Ledger {
		a.ledger = sqlite.NewLazyLedgerRepository(db.LedgerPath(workspace.Root()))
		ledger = a.ledger
	}

	// Create services (primary ports implementation)
	a.Customize = app.NewCustomizeService(workspace, ledger, logger)
	a.History = app.NewHistoryService(ledger)

	return a, nil
}

// Watcher returns a watcher that re-runs req whenever the demo page changes.
func (a *App) Watcher(req primary.RunRequest, onRun app.RunHandler) *app.Watcher {
	return app.NewWatcher(a.Customize, a.Workspace.SourceDir(), req, a.Logger, onRun)
}

// CustomizeAdapter returns a new CustomizeAdapter writing to stdout.
func (a *App) CustomizeAdapter() *cliadapter.CustomizeAdapter {
	return a.CustomizeAdapterWithOutput(os.Stdout)
}

// CustomizeAdapterWithOutput returns a new CustomizeAdapter writing to the given output.
func (a *App) CustomizeAdapterWithOutput(out io.Writer) *cliadapter.CustomizeAdapter {
	return cliadapter.NewCustomizeAdapter(a.Customize, out)
}

// HistoryAdapterWithOutput returns a new HistoryAdapter writing to the given output.
func (a *App) HistoryAdapterWithOutput(out io.Writer) *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(a.History, out)
}

// Close releases the ledger database and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.ledger != nil {
		errs = append(errs, a.ledger.Close())
	}
	// Sync on stderr fails on some terminals; that is not worth reporting.
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
