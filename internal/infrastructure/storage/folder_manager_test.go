package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFolderManager_CreateFolder(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()
	fm := NewFolderManager(tempDir, logger)

	t.Run("creates workflow folder", func(t *testing.T) {
		folderPath, err := fm.CreateFolder(ctx, "42")

		require.NoError(t, err)
		assert.DirExists(t, folderPath)
		assert.Equal(t, filepath.Join(tempDir, "42"), folderPath)
	})

	t.Run("existing folder returns same path", func(t *testing.T) {
		first, err := fm.CreateFolder(ctx, "77")
		require.NoError(t, err)

		second, err := fm.CreateFolder(ctx, "77")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty name fails", func(t *testing.T) {
		_, err := fm.CreateFolder(ctx, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("traversal attempts stay inside the base directory", func(t *testing.T) {
		folderPath, err := fm.CreateFolder(ctx, "../../../etc/passwd")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(folderPath, tempDir))
		assert.NotContains(t, folderPath, "..")
	})
}

func TestFolderManager_GetPathAndExists(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()
	fm := NewFolderManager(tempDir, logger)

	t.Run("path is returned without creating the folder", func(t *testing.T) {
		path := fm.GetPath("91")

		assert.Equal(t, filepath.Join(tempDir, "91"), path)
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("exists reflects the filesystem", func(t *testing.T) {
		assert.False(t, fm.Exists("55"))

		_, err := fm.CreateFolder(ctx, "55")
		require.NoError(t, err)

		assert.True(t, fm.Exists("55"))
	})
}

func TestFolderManager_Delete(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()
	fm := NewFolderManager(tempDir, logger)

	t.Run("deletes folder and contents", func(t *testing.T) {
		folderPath, err := fm.CreateFolder(ctx, "42")
		require.NoError(t, err)

		file := filepath.Join(folderPath, "onboarding_summary_42.xlsx")
		require.NoError(t, os.WriteFile(file, []byte("workbook"), 0644))

		require.NoError(t, fm.Delete(ctx, "42"))
		assert.NoDirExists(t, folderPath)
	})

	t.Run("deleting a missing folder is not an error", func(t *testing.T) {
		assert.NoError(t, fm.Delete(ctx, "never-created"))
	})
}

func TestFolderManager_SanitizeName(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	fm := NewFolderManager(t.TempDir(), logger)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps valid characters",
			input:    "42",
			expected: "42",
		},
		{
			name:     "removes path separators",
			input:    "../../../etc/passwd",
			expected: "etcpasswd",
		},
		{
			name:     "removes special characters",
			input:    "emp<>:\"|?*1042",
			expected: "emp1042",
		},
		{
			name:     "preserves underscores and hyphens",
			input:    "workflow_42-docs",
			expected: "workflow_42-docs",
		},
		{
			name:     "removes backslashes",
			input:    "a\\b\\c",
			expected: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fm.SanitizeName(tt.input))
		})
	}
}
