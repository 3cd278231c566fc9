package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for every per-run artifact location.
// It is a plain value derived from OutputConfig and carries no hidden state,
// so the same layout can be passed into the store, exporter, and pipeline.
type Paths struct {
	OutputDir    string
	DatabasePath string
	WorkbookPath string
}

// NewPaths derives the output layout from the output configuration
func NewPaths(out OutputConfig) Paths {
	return Paths{
		OutputDir:    out.Dir,
		DatabasePath: filepath.Join(out.Dir, out.DatabaseFile),
		WorkbookPath: filepath.Join(out.Dir, out.WorkbookFile),
	}
}

// QueryCSVPath returns the export location for a named query result
func (p Paths) QueryCSVPath(name string) string {
	return filepath.Join(p.OutputDir, name+".csv")
}

// EnsureOutputDir creates the output directory if it does not exist
func (p Paths) EnsureOutputDir() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.OutputDir, err)
	}
	return nil
}
