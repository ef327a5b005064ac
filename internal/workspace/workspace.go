// Package workspace manages the on-disk layout for runs: the knowledge
// directory for uploaded resumes, per-run scratch directories for in-flight
// artifacts, and the archive directory for completed runs.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Default directory names, relative to the workspace root.
const (
	DefaultKnowledgeDir = "knowledge"
	DefaultOutputDir    = "output"
	DefaultArchiveDir   = "archive"
)

// Workspace holds the resolved directory roots for a running instance.
type Workspace struct {
	KnowledgeDir string
	OutputDir    string
	ArchiveDir   string
}

// New creates a workspace rooted at root, creating the three directories if
// absent. All creation is idempotent.
func New(root string) (*Workspace, error) {
	ws := &Workspace{
		KnowledgeDir: filepath.Join(root, DefaultKnowledgeDir),
		OutputDir:    filepath.Join(root, DefaultOutputDir),
		ArchiveDir:   filepath.Join(root, DefaultArchiveDir),
	}
	for _, dir := range []string{ws.KnowledgeDir, ws.OutputDir, ws.ArchiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create workspace directory %s: %w", dir, err)
		}
	}
	return ws, nil
}

// NewRunScratch creates a scratch directory keyed by runID under the output
// root. Every stage of a run writes only inside its own scratch directory, so
// concurrent runs cannot race on each other's artifacts.
func (w *Workspace) NewRunScratch(runID uuid.UUID) (string, error) {
	dir := filepath.Join(w.OutputDir, runID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	return dir, nil
}

// RemoveRunScratch deletes a run's scratch directory. Called after archiving;
// by then the directory holds no recognized artifacts, only leftovers.
func (w *Workspace) RemoveRunScratch(runID uuid.UUID) error {
	return os.RemoveAll(filepath.Join(w.OutputDir, runID.String()))
}
