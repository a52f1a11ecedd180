package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"go.uber.org/zap"
)

// DocumentStore implements port.FileStorage over a local directory. Generated
// onboarding documents live under baseDir, one subfolder per workflow, and
// every path handed to the store is relative to baseDir.
type DocumentStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewDocumentStore creates a document store rooted at baseDir
func NewDocumentStore(baseDir string, logger *zap.Logger) port.FileStorage {
	return &DocumentStore{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Save writes content to the given relative path, creating parent
// directories as needed
func (s *DocumentStore) Save(ctx context.Context, path string, content []byte) error {
	fullPath := s.GetFullPath(path)

	if err := s.validatePath(fullPath); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		s.logger.Error("Failed to create document directory",
			zap.String("path", filepath.Dir(fullPath)),
			zap.Error(err))
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write document",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Document saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return nil
}

// Read returns the content stored at the given relative path
func (s *DocumentStore) Read(ctx context.Context, path string) ([]byte, error) {
	fullPath := s.GetFullPath(path)

	if err := s.validatePath(fullPath); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		s.logger.Error("Failed to read document",
			zap.String("path", fullPath),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return content, nil
}

// Exists reports whether a file exists at the given relative path
func (s *DocumentStore) Exists(ctx context.Context, path string) bool {
	_, err := os.Stat(s.GetFullPath(path))
	return err == nil
}

// Delete removes the file at the given relative path. Deleting a file that
// does not exist is not an error.
func (s *DocumentStore) Delete(ctx context.Context, path string) error {
	fullPath := s.GetFullPath(path)

	if err := s.validatePath(fullPath); err != nil {
		return err
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		s.logger.Error("Failed to delete document",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.Debug("Document deleted", zap.String("path", fullPath))

	return nil
}

// GetFullPath resolves a relative path against the store's base directory
func (s *DocumentStore) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// validatePath rejects paths that resolve outside the base directory
func (s *DocumentStore) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}

	return nil
}
