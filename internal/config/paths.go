package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves every file location the application touches. It is the
// single source of truth for paths; nothing else joins path segments.
type Paths struct {
	DataDir      string
	DatasetFile  string
	DatabaseFile string
	OutputDir    string
	LogsDir      string
}

// NewPaths builds the path set from configuration, resolving relative
// entries against the current working directory.
func NewPaths(cfg *Config) (*Paths, error) {
	base, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	return &Paths{
		DataDir:      resolve(cfg.Paths.DataDir),
		DatasetFile:  resolve(cfg.Data.DatasetFile),
		DatabaseFile: resolve(cfg.Paths.DatabaseFile),
		OutputDir:    resolve(cfg.Paths.OutputDir),
		LogsDir:      resolve(cfg.Paths.LogsDir),
	}, nil
}

// EnsureDirectories creates every directory the application writes to.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// OutputPath returns the path of a file inside the output directory.
func (p *Paths) OutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}
