// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import (
	"context"
	"errors"
)

var (
	// ErrSourceMissing means a demo template file is absent or unreadable.
	ErrSourceMissing = errors.New("demo source missing")

	// ErrDestinationUnwritable means an entity page directory is absent or cannot be written.
	ErrDestinationUnwritable = errors.New("destination unwritable")

	// ErrDemoExists means seeding would overwrite an existing demo page.
	ErrDemoExists = errors.New("demo page already exists")
)

// WorkspaceAdapter defines the secondary port for the edge-tests directory tree.
type WorkspaceAdapter interface {
	// ReadSource reads a demo template file. Failures wrap ErrSourceMissing.
	ReadSource(ctx context.Context, name string) ([]byte, error)

	// ReadOutput reads a previously generated file; it returns nil, nil when absent.
	ReadOutput(ctx context.Context, key, name string) ([]byte, error)

	// PrepareOutput makes sure the entity directory exists and accepts new files.
	// Failures wrap ErrDestinationUnwritable.
	PrepareOutput(ctx context.Context, key string) error

	// WriteOutput atomically replaces a generated file and returns its path.
	// Failures wrap ErrDestinationUnwritable.
	WriteOutput(ctx context.Context, key, name string, data []byte) (string, error)

	// SeedSource writes a demo template file. Without force, an existing file
	// yields ErrDemoExists.
	SeedSource(ctx context.Context, name string, data []byte, force bool) (string, error)

	// Path resolution
	Root() string
	SourceDir() string
	SourcePath(name string) string
	OutputPath(key, name string) string
}
