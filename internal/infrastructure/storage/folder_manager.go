package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"go.uber.org/zap"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// FolderManager implements port.FolderManager over a local directory. The
// engine creates one folder per workflow to hold its generated documents;
// folder names are sanitized before they touch the filesystem.
type FolderManager struct {
	baseDir string
	logger  *zap.Logger
}

// NewFolderManager creates a folder manager rooted at baseDir
func NewFolderManager(baseDir string, logger *zap.Logger) port.FolderManager {
	return &FolderManager{
		baseDir: baseDir,
		logger:  logger,
	}
}

// CreateFolder creates the folder for the given name and returns its full
// path. Creating a folder that already exists is not an error.
func (m *FolderManager) CreateFolder(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("cannot create folder: empty name")
	}

	folderPath := m.GetPath(name)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		m.logger.Error("Failed to create folder",
			zap.String("name", name),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to create folder: %w", err)
	}

	m.logger.Debug("Folder created",
		zap.String("name", name),
		zap.String("folder_path", folderPath))

	return folderPath, nil
}

// GetPath returns the full path for a folder without creating it
func (m *FolderManager) GetPath(name string) string {
	return filepath.Join(m.baseDir, m.SanitizeName(name))
}

// Exists reports whether the folder exists
func (m *FolderManager) Exists(name string) bool {
	info, err := os.Stat(m.GetPath(name))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Delete removes the folder and everything in it. Deleting a folder that
// does not exist is not an error.
func (m *FolderManager) Delete(ctx context.Context, name string) error {
	folderPath := m.GetPath(name)

	if _, err := os.Stat(folderPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.RemoveAll(folderPath); err != nil {
		m.logger.Error("Failed to delete folder",
			zap.String("name", name),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	m.logger.Debug("Folder deleted",
		zap.String("name", name),
		zap.String("folder_path", folderPath))

	return nil
}

// SanitizeName strips path separators, parent references and any character
// outside [a-zA-Z0-9-_] from the name
func (m *FolderManager) SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	return unsafeNameChars.ReplaceAllString(name, "")
}
