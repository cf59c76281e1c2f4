// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/edgegen/internal/ports/secondary"
)

const (
	// DefaultSourceDir is the demo page directory under the root.
	DefaultSourceDir = "edge-tests-demo"

	// OutputDirPrefix prefixes every entity page directory.
	OutputDirPrefix = "edge-tests-"
)

// WorkspaceAdapter implements secondary.WorkspaceAdapter over a developer-tools root.
type WorkspaceAdapter struct {
	root       string
	sourceDir  string
	createDirs bool
}

// NewWorkspaceAdapter creates a new filesystem workspace adapter.
// If root is empty, defaults to the current directory; if sourceDir is empty,
// defaults to DefaultSourceDir. With createDirs, missing entity directories are
// created instead of reported as unwritable.
func NewWorkspaceAdapter(root, sourceDir string, createDirs bool) (*WorkspaceAdapter, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	if sourceDir == "" {
		sourceDir = DefaultSourceDir
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	return &WorkspaceAdapter{
		root:       abs,
		sourceDir:  sourceDir,
		createDirs: createDirs,
	}, nil
}

// ReadSource reads a demo template file.
func (a *WorkspaceAdapter) ReadSource(ctx context.Context, name string) ([]byte, error) {
	path := a.SourcePath(name)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", secondary.ErrSourceMissing, err)
	}
	return b, nil
}

// ReadOutput reads a previously generated file; a missing file is not an error.
func (a *WorkspaceAdapter) ReadOutput(ctx context.Context, key, name string) ([]byte, error) {
	b, err := os.ReadFile(a.OutputPath(key, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// PrepareOutput checks that an entity directory can take new files before any is written.
func (a *WorkspaceAdapter) PrepareOutput(ctx context.Context, key string) error {
	dir := a.outputDir(key)
	if err := a.ensureDir(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".edgegen-check-*")
	if err != nil {
		return fmt.Errorf("%w: %w", secondary.ErrDestinationUnwritable, err)
	}
	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("%w: %w", secondary.ErrDestinationUnwritable, err)
	}
	return nil
}

// WriteOutput atomically replaces a generated file.
func (a *WorkspaceAdapter) WriteOutput(ctx context.Context, key, name string, data []byte) (string, error) {
	path := a.OutputPath(key, name)
	if err := a.ensureDir(filepath.Dir(path)); err != nil {
		return path, err
	}

	if err := writeFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("%w: %s: %w", secondary.ErrDestinationUnwritable, path, err)
	}
	return path, nil
}

// ensureDir creates a missing entity directory when allowed, and rejects non-directories.
func (a *WorkspaceAdapter) ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if !a.createDirs {
			return fmt.Errorf("%w: directory %s does not exist", secondary.ErrDestinationUnwritable, dir)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %w", secondary.ErrDestinationUnwritable, err)
		}
	case err != nil:
		return fmt.Errorf("%w: %w", secondary.ErrDestinationUnwritable, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s is not a directory", secondary.ErrDestinationUnwritable, dir)
	}
	return nil
}

// SeedSource writes a demo template file, creating the demo directory if needed.
func (a *WorkspaceAdapter) SeedSource(ctx context.Context, name string, data []byte, force bool) (string, error) {
	path := a.SourcePath(name)

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", secondary.ErrDemoExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("failed to create demo directory: %w", err)
	}
	if err := writeFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Root returns the absolute developer-tools root.
func (a *WorkspaceAdapter) Root() string {
	return a.root
}

// SourceDir returns the absolute demo page directory.
func (a *WorkspaceAdapter) SourceDir() string {
	return filepath.Join(a.root, a.sourceDir)
}

// SourcePath returns the path of a demo template file.
func (a *WorkspaceAdapter) SourcePath(name string) string {
	return filepath.Join(a.SourceDir(), name)
}

// OutputPath returns the path of a generated file for an entity.
func (a *WorkspaceAdapter) OutputPath(key, name string) string {
	return filepath.Join(a.outputDir(key), name)
}

func (a *WorkspaceAdapter) outputDir(key string) string {
	return filepath.Join(a.root, OutputDirPrefix+key)
}

// writeFile writes bytes via a temp file in the target directory, then atomically
// replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// Ensure WorkspaceAdapter implements the interface
var _ secondary.WorkspaceAdapter = (*WorkspaceAdapter)(nil)
