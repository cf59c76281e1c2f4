// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"

	"github.com/example/edgegen/internal/customize"
	"github.com/example/edgegen/internal/entities"
)

// Demo page file names.
const (
	ScriptFile = "script.js"
	StyleFile  = "style.css"
)

// Output statuses.
const (
	OutputCreated   = "created"
	OutputUpdated   = "updated"
	OutputUnchanged = "unchanged"
)

// CustomizeService defines the primary port for generating entity pages.
type CustomizeService interface {
	// Run customizes both demo files for every requested entity.
	Run(ctx context.Context, req RunRequest) (*RunResult, error)

	// CustomizeScript writes <entity-dir>/script.js from the demo script.
	CustomizeScript(ctx context.Context, cfg entities.EntityConfig) (*OutputResult, error)

	// CopyStyle writes <entity-dir>/style.css from the demo stylesheet.
	CopyStyle(ctx context.Context, cfg entities.EntityConfig) (*OutputResult, error)

	// SeedDemo writes the placeholder-token demo page and returns the written paths.
	SeedDemo(ctx context.Context, force bool) ([]string, error)
}

// RunRequest contains parameters for a customize run.
type RunRequest struct {
	Entities  entities.Table
	KeepGoing bool // skip entities whose directory is unwritable instead of aborting
	Jobs      int  // entities processed concurrently; <= 1 means sequential
	DryRun    bool // compute outputs without writing or recording them
	Strict    bool // treat leftover template markers as errors
}

// RunResult is the outcome of a customize run.
type RunResult struct {
	RunID   string
	DryRun  bool
	Outputs []*OutputResult  // table order; script.js before style.css
	Skipped []*SkippedEntity // entities skipped under KeepGoing
}

// OutputResult describes one generated file.
type OutputResult struct {
	EntityKey string
	File      string
	Path      string
	Status    string // OutputCreated, OutputUpdated, OutputUnchanged
	Digest    string
	Bytes     int
	Residue   []customize.Finding
}

// SkippedEntity is an entity whose directory could not be written.
type SkippedEntity struct {
	EntityKey string
	Err       error
	Partial   bool // some files were written before the failure; they appear in Outputs
}
