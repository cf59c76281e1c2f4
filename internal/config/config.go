package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/edgegen/internal/entities"
)

const (
	// Dir is the edgegen state directory under the root.
	Dir = ".edgegen"

	// File is the config file name inside Dir.
	File = "config.yaml"
)

// Config represents the optional per-root edgegen configuration.
type Config struct {
	SourceDir  string         `yaml:"source_dir,omitempty"` // demo directory, relative to the root
	KeepGoing  bool           `yaml:"keep_going"`           // skip unwritable entities
	Jobs       int            `yaml:"jobs"`                 // concurrent entities
	CreateDirs bool           `yaml:"create_dirs"`          // create missing entity directories
	Ledger     bool           `yaml:"ledger"`               // record runs in .edgegen/ledger.db
	Entities   entities.Table `yaml:"entities,omitempty"`   // replaces the built-in table
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Jobs:       1,
		CreateDirs: true,
		Ledger:     true,
	}
}

// Path returns the config file path for root.
func Path(root string) string {
	return filepath.Join(root, Dir, File)
}

// LoadConfig reads .edgegen/config.yaml from root.
// A missing file yields Default; a malformed or invalid one is an error.
// Fields absent from the file keep their default values.
func LoadConfig(root string) (*Config, error) {
	cfg := Default()

	path := Path(root)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes config.yaml under root.
func SaveConfig(root string, cfg *Config) error {
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", Dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(root), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks value ranges and, when present, the entity table.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if filepath.IsAbs(c.SourceDir) {
		return fmt.Errorf("source_dir must be relative to the root, got %s", c.SourceDir)
	}
	if c.Entities != nil {
		if err := c.Entities.Validate(); err != nil {
			return fmt.Errorf("entities: %w", err)
		}
	}
	return nil
}

// Table returns the configured entity table, or the built-in one.
func (c *Config) Table() entities.Table {
	if len(c.Entities) > 0 {
		return c.Entities
	}
	return entities.Default()
}
