package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/example/edgegen/internal/ports/primary"
)

// DefaultDebounce is how long the watcher waits for writes to settle before re-running.
const DefaultDebounce = 200 * time.Millisecond

// RunHandler receives the outcome of every run started by a Watcher.
type RunHandler func(result *primary.RunResult, err error)

// Watcher re-runs the customize service whenever a demo file changes.
type Watcher struct {
	service   primary.CustomizeService
	sourceDir string
	request   primary.RunRequest
	debounce  time.Duration
	logger    *zap.Logger
	onRun     RunHandler
}

// NewWatcher creates a Watcher for the demo directory sourceDir.
func NewWatcher(service primary.CustomizeService, sourceDir string, req primary.RunRequest, logger *zap.Logger, onRun RunHandler) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onRun == nil {
		onRun = func(*primary.RunResult, error) {}
	}
	return &Watcher{
		service:   service,
		sourceDir: sourceDir,
		request:   req,
		debounce:  DefaultDebounce,
		logger:    logger,
		onRun:     onRun,
	}
}

// WithDebounce overrides the settle delay.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch runs once, then again after every change to a demo file, until ctx is done.
// Run failures are handed to the RunHandler and do not stop the watcher.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.sourceDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.sourceDir, err)
	}
	w.logger.Info("watching demo page", zap.String("path", w.sourceDir))

	w.run(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isDemoChange(event) {
				continue
			}
			w.logger.Debug("demo file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			w.run(ctx)
		}
	}
}

func (w *Watcher) run(ctx context.Context) {
	result, err := w.service.Run(ctx, w.request)
	if err != nil {
		w.logger.Warn("customize run failed", zap.Error(err))
	}
	w.onRun(result, err)
}

// isDemoChange reports whether event rewrote one of the demo page files.
func isDemoChange(event fsnotify.Event) bool {
	switch filepath.Base(event.Name) {
	case primary.ScriptFile, primary.StyleFile:
	default:
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create)
}
