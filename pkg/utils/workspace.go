package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/logger"
)

// Workspace is a scratch directory for intermediate files of one input file.
// Everything below it is removed by Cleanup.
type Workspace struct {
	baseDir string
	mu      sync.Mutex
	logger  *logger.Logger
	closed  bool
}

// NewWorkspace creates a fresh scratch directory under the system temp dir
func NewWorkspace(name string, log *logger.Logger) (*Workspace, error) {
	prefix := constants.GetPlatformConfig().TempDirPrefix
	if sanitized := SanitizeFileName(name); sanitized != "" {
		prefix += sanitized + "-"
	}

	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return nil, NewIOError("failed to create workspace", err)
	}

	log.Debug("Created workspace: %s", dir)
	return &Workspace{baseDir: dir, logger: log}, nil
}

// GetPath returns a path under the workspace root
func (w *Workspace) GetPath(relativePath string) string {
	return filepath.Join(w.baseDir, relativePath)
}

// CreateDir creates a sub-directory of the workspace
func (w *Workspace) CreateDir(name string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return "", fmt.Errorf("workspace %s already cleaned up", w.baseDir)
	}

	dirPath := w.GetPath(SanitizeFileName(name))
	if err := EnsureDir(dirPath); err != nil {
		return "", NewIOError("failed to create workspace directory", err)
	}
	return dirPath, nil
}

// Cleanup removes the workspace. Calling it again is a no-op.
func (w *Workspace) Cleanup() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := os.RemoveAll(w.baseDir); err != nil {
		w.logger.Warn("Failed to remove workspace %s: %v", w.baseDir, err)
		return err
	}
	w.logger.Debug("Removed workspace: %s", w.baseDir)
	return nil
}

// WithCleanup executes fn and always cleans up afterwards
func (w *Workspace) WithCleanup(fn func() error) error {
	defer w.Cleanup()
	return fn()
}
