// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// customization logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/edgegen/internal/entities"
	"github.com/example/edgegen/internal/ports/primary"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
	skipMark = color.New(color.FgRed).Sprint("✗")
)

// CustomizeAdapter is a thin adapter that translates CLI operations to CustomizeService calls.
type CustomizeAdapter struct {
	service primary.CustomizeService
	out     io.Writer
}

// NewCustomizeAdapter creates a new CustomizeAdapter with the given service.
func NewCustomizeAdapter(service primary.CustomizeService, out io.Writer) *CustomizeAdapter {
	return &CustomizeAdapter{
		service: service,
		out:     out,
	}
}

// Run customizes the demo page for every entity in req and reports each file.
// Files written before a failure are still reported.
func (a *CustomizeAdapter) Run(ctx context.Context, req primary.RunRequest) error {
	result, err := a.service.Run(ctx, req)
	if result != nil {
		a.PrintResult(result)
	}
	return err
}

// PrintResult writes one line per output, followed by skipped entities and a summary.
func (a *CustomizeAdapter) PrintResult(result *primary.RunResult) {
	verb := "Customized"
	if result.DryRun {
		verb = "Would customize"
	}

	counts := map[string]int{}
	for _, o := range result.Outputs {
		counts[o.Status]++
		fmt.Fprintf(a.out, "%s %s %s (%s)\n", okMark, verb, o.Path, o.Status)
		for _, f := range o.Residue {
			fmt.Fprintf(a.out, "  %s %s:%d:%d leftover %q\n", warnMark, o.Path, f.Line, f.Column, f.Text)
		}
	}
	for _, s := range result.Skipped {
		state := "Skipped"
		if s.Partial {
			state = "Partially written"
		}
		fmt.Fprintf(a.out, "%s %s %s: %v\n", skipMark, state, s.EntityKey, s.Err)
	}

	fmt.Fprintf(a.out, "\n%d files: %d created, %d updated, %d unchanged",
		len(result.Outputs), counts[primary.OutputCreated], counts[primary.OutputUpdated], counts[primary.OutputUnchanged])
	if len(result.Skipped) > 0 {
		fmt.Fprintf(a.out, ", %d entities skipped", len(result.Skipped))
	}
	if result.DryRun {
		fmt.Fprint(a.out, " (dry-run mode - no files written)")
	} else if result.RunID != "" {
		fmt.Fprintf(a.out, " [%s]", result.RunID)
	}
	fmt.Fprintln(a.out)
}

// Seed writes the placeholder-token demo page.
func (a *CustomizeAdapter) Seed(ctx context.Context, force bool) error {
	paths, err := a.service.SeedDemo(ctx, force)
	for _, p := range paths {
		fmt.Fprintf(a.out, "%s Created %s\n", okMark, p)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Next steps:")
	fmt.Fprintln(a.out, "  edgegen entities")
	fmt.Fprintln(a.out, "  edgegen customize")
	return nil
}

// PrintEntities prints the entity table.
func PrintEntities(out io.Writer, table entities.Table) {
	fmt.Fprintf(out, "\n%-15s %-15s %-16s %s\n", "KEY", "DISPLAY NAME", "ID FIELD", "ITEM")
	fmt.Fprintln(out, "────────────────────────────────────────────────────────────────")
	for _, e := range table {
		fmt.Fprintf(out, "%-15s %-15s %-16s %s\n", e.Key, e.DisplayName, e.EffectiveIDField(), e.ItemLabel)
	}
	fmt.Fprintln(out)
}
