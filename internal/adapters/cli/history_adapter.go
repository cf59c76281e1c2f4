package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/edgegen/internal/ports/primary"
)

// HistoryAdapter is a thin adapter that translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List lists recorded runs, newest first.
func (a *HistoryAdapter) List(ctx context.Context, limit int) error {
	runs, err := a.service.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs recorded")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-42s %-8s %-8s %s\n", "ID", "STATUS", "ENTITIES", "STARTED")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, r := range runs {
		fmt.Fprintf(a.out, "%-42s %-8s %-8d %s\n", r.ID, statusLabel(r.Status), r.EntityCount, r.StartedAt)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show lists the files written by one run.
func (a *HistoryAdapter) Show(ctx context.Context, runID string) error {
	outputs, err := a.service.ListOutputs(ctx, runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nRun: %s\n\n", runID)
	fmt.Fprintf(a.out, "%-10s %-15s %-12s %s\n", "STATUS", "ENTITY", "DIGEST", "PATH")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, o := range outputs {
		fmt.Fprintf(a.out, "%-10s %-15s %-12s %s\n", o.Status, o.EntityKey, shortDigest(o.Digest), o.Path)
	}
	fmt.Fprintln(a.out)

	return nil
}

func statusLabel(status string) string {
	switch status {
	case "success":
		return color.New(color.FgGreen).Sprint(status)
	case "failed":
		return color.New(color.FgRed).Sprint(status)
	default:
		return color.New(color.FgYellow).Sprint(status)
	}
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
