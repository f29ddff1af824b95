package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the output locations used by the taxicli tools.
// This is the single source of truth for artifact paths: every tool that
// writes a well-known file resolves it through here.
type Paths struct {
	BaseDir      string
	DataDir      string
	ArtifactsDir string
	DimsDir      string
	SplitsDir    string
	LogsDir      string
}

// GetPaths returns the tool paths rooted at the current working directory.
// The tools are invoked from the dataset workspace, so unlike a long-running
// service the working directory is the natural anchor.
func GetPaths() (*Paths, error) {
	base, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return GetPathsFrom(base), nil
}

// GetPathsFrom returns the tool paths rooted at the given base directory.
//
// Directory structure:
//
//	base/
//	  ├── data/            (input and curated CSV files)
//	  │   ├── dim/         (dimension tables)
//	  │   └── splits/      (part_NN.csv chunks)
//	  ├── docs/            (summary artifacts and aggregate tables)
//	  └── logs/            (tool logs)
func GetPathsFrom(base string) *Paths {
	dataDir := filepath.Join(base, "data")
	return &Paths{
		BaseDir:      base,
		DataDir:      dataDir,
		ArtifactsDir: filepath.Join(base, "docs"),
		DimsDir:      filepath.Join(dataDir, "dim"),
		SplitsDir:    filepath.Join(dataDir, "splits"),
		LogsDir:      filepath.Join(base, "logs"),
	}
}

// EnsureDirectories creates every directory in the layout.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.ArtifactsDir, p.DimsDir, p.SplitsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path of a named log file under the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// ArtifactPath returns the path of a named summary artifact.
func (p *Paths) ArtifactPath(name string) string {
	return filepath.Join(p.ArtifactsDir, name)
}
